package models

import (
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// Link is one product_tag row seen from one side of the association.
type Link struct {
	RowID   uint
	OtherID uint
}

// LinkPlan lists the join table changes that make an entity's links match a
// requested id set. Add and Remove hold other-side ids; DropRows holds the
// product_tag ids to delete, including surplus rows for an already linked pair.
type LinkPlan struct {
	Add      []uint
	Remove   []uint
	DropRows []uint
}

// Empty reports whether applying the plan would change nothing.
func (p LinkPlan) Empty() bool {
	return len(p.Add) == 0 && len(p.DropRows) == 0
}

// PlanLinks diffs the current links of one entity against the requested
// other-side ids. Requested ids are treated as a set.
func PlanLinks(current []Link, requested []uint) LinkPlan {
	want := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		want[id] = struct{}{}
	}

	var plan LinkPlan
	kept := make(map[uint]struct{}, len(current))
	removed := make(map[uint]struct{})
	for _, l := range current {
		if _, ok := want[l.OtherID]; !ok {
			plan.DropRows = append(plan.DropRows, l.RowID)
			removed[l.OtherID] = struct{}{}
			continue
		}
		if _, dup := kept[l.OtherID]; dup {
			plan.DropRows = append(plan.DropRows, l.RowID)
			continue
		}
		kept[l.OtherID] = struct{}{}
	}

	for id := range want {
		if _, ok := kept[id]; !ok {
			plan.Add = append(plan.Add, id)
		}
	}
	for id := range removed {
		plan.Remove = append(plan.Remove, id)
	}

	slices.Sort(plan.Add)
	slices.Sort(plan.Remove)
	slices.Sort(plan.DropRows)
	return plan
}

// UniqueIDs returns ids sorted with duplicates removed. A nil input stays nil.
func UniqueIDs(ids []uint) []uint {
	if ids == nil {
		return nil
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// linkSide describes product_tag from the point of view of one entity type.
type linkSide struct {
	column string
	other  func(ProductTag) uint
	row    func(owner, other uint) ProductTag
}

var (
	productLinks = linkSide{
		column: "product_id",
		other:  func(pt ProductTag) uint { return pt.TagID },
		row:    func(owner, other uint) ProductTag { return ProductTag{ProductID: owner, TagID: other} },
	}
	tagLinks = linkSide{
		column: "tag_id",
		other:  func(pt ProductTag) uint { return pt.ProductID },
		row:    func(owner, other uint) ProductTag { return ProductTag{ProductID: other, TagID: owner} },
	}
)

func (s linkSide) load(tx *gorm.DB, ownerID uint) ([]Link, error) {
	var rows []ProductTag
	if err := tx.Where(s.column+" = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load product tags: %w", err)
	}
	links := make([]Link, len(rows))
	for i, r := range rows {
		links[i] = Link{RowID: r.ID, OtherID: s.other(r)}
	}
	return links, nil
}

// reconcile rewrites the join rows of ownerID so they match requested.
func (s linkSide) reconcile(tx *gorm.DB, ownerID uint, requested []uint) (LinkPlan, error) {
	current, err := s.load(tx, ownerID)
	if err != nil {
		return LinkPlan{}, err
	}

	plan := PlanLinks(current, requested)
	if len(plan.DropRows) > 0 {
		if err := tx.Delete(&ProductTag{}, plan.DropRows).Error; err != nil {
			return LinkPlan{}, fmt.Errorf("remove product tags: %w", err)
		}
	}
	if len(plan.Add) > 0 {
		rows := make([]ProductTag, len(plan.Add))
		for i, id := range plan.Add {
			rows[i] = s.row(ownerID, id)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return LinkPlan{}, fmt.Errorf("add product tags: %w", err)
		}
	}
	return plan, nil
}

// ensureExist fails with an InvalidReferenceError listing the ids in ids that
// have no row in model's table. ids must already be unique.
func ensureExist(tx *gorm.DB, model any, kind string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("look up %s ids: %w", kind, err)
	}
	if len(found) == len(ids) {
		return nil
	}
	var missing []uint
	for _, id := range ids {
		if !slices.Contains(found, id) {
			missing = append(missing, id)
		}
	}
	return &InvalidReferenceError{Kind: kind, IDs: missing}
}

// orderByID keeps preloaded associations in primary key order.
func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
