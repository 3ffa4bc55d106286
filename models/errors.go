package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound matches every "no row with that id" error of this package.
var ErrNotFound = errors.New("record not found")

// ErrInvalidReference matches errors caused by ids that point at missing rows.
var ErrInvalidReference = errors.New("invalid reference")

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound error = notFoundError("category not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound error = notFoundError("product not found")
	// ErrTagNotFound is returned when a tag is not found.
	ErrTagNotFound error = notFoundError("tag not found")
)

// InvalidReferenceError reports ids of Kind that do not exist in the store.
type InvalidReferenceError struct {
	Kind string
	IDs  []uint
}

func (e *InvalidReferenceError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}
	return fmt.Sprintf("invalid %s id: %s", e.Kind, strings.Join(ids, ", "))
}

func (e *InvalidReferenceError) Is(target error) bool { return target == ErrInvalidReference }
