package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanLinks(t *testing.T) {
	testCases := []struct {
		name      string
		current   []Link
		requested []uint
		expected  LinkPlan
	}{
		{
			name:      "Adds missing and removes unrequested",
			current:   []Link{{RowID: 10, OtherID: 1}, {RowID: 11, OtherID: 2}, {RowID: 12, OtherID: 3}},
			requested: []uint{2, 3, 4},
			expected:  LinkPlan{Add: []uint{4}, Remove: []uint{1}, DropRows: []uint{10}},
		},
		{
			name:      "Identical sets change nothing",
			current:   []Link{{RowID: 1, OtherID: 5}, {RowID: 2, OtherID: 6}},
			requested: []uint{6, 5},
			expected:  LinkPlan{},
		},
		{
			name:      "Empty request removes everything",
			current:   []Link{{RowID: 1, OtherID: 5}, {RowID: 2, OtherID: 6}},
			requested: []uint{},
			expected:  LinkPlan{Remove: []uint{5, 6}, DropRows: []uint{1, 2}},
		},
		{
			name:      "Duplicate requested ids behave as a set",
			current:   nil,
			requested: []uint{2, 2, 3},
			expected:  LinkPlan{Add: []uint{2, 3}},
		},
		{
			name:      "Surplus rows for a kept pair are dropped",
			current:   []Link{{RowID: 1, OtherID: 7}, {RowID: 2, OtherID: 7}},
			requested: []uint{7},
			expected:  LinkPlan{DropRows: []uint{2}},
		},
		{
			name:      "Duplicate rows for a removed pair are all dropped",
			current:   []Link{{RowID: 3, OtherID: 8}, {RowID: 4, OtherID: 8}},
			requested: nil,
			expected:  LinkPlan{Remove: []uint{8}, DropRows: []uint{3, 4}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan := PlanLinks(tc.current, tc.requested)
			assert.Equal(t, tc.expected, plan)
		})
	}
}

func TestPlanLinksIsIdempotent(t *testing.T) {
	requested := []uint{2, 3, 4}
	first := PlanLinks([]Link{{RowID: 1, OtherID: 1}, {RowID: 2, OtherID: 2}}, requested)
	assert.Equal(t, []uint{3, 4}, first.Add)

	// Apply the first plan by hand and diff again.
	after := []Link{{RowID: 2, OtherID: 2}, {RowID: 3, OtherID: 3}, {RowID: 4, OtherID: 4}}
	second := PlanLinks(after, requested)
	assert.True(t, second.Empty())
}

func TestUniqueIDs(t *testing.T) {
	assert.Nil(t, UniqueIDs(nil))
	assert.Equal(t, []uint{}, UniqueIDs([]uint{}))
	assert.Equal(t, []uint{1, 2, 3}, UniqueIDs([]uint{3, 1, 2, 3, 1}))
}

func TestInvalidReferenceError(t *testing.T) {
	err := &InvalidReferenceError{Kind: "tag", IDs: []uint{7, 999}}
	assert.Equal(t, "invalid tag id: 7, 999", err.Error())
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNotFoundErrors(t *testing.T) {
	for _, err := range []error{ErrCategoryNotFound, ErrProductNotFound, ErrTagNotFound} {
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, "product not found", ErrProductNotFound.Error())
}
