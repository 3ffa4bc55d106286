package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagsRepository struct {
	db *gorm.DB
}

func NewTagsRepository(db *gorm.DB) *TagsRepository {
	return &TagsRepository{db: db}
}

func (r *TagsRepository) GetAllTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := r.db.WithContext(ctx).
		Preload("Products", orderByID).
		Order("id").
		Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *TagsRepository) GetTagByID(ctx context.Context, id uint) (*Tag, error) {
	return loadTag(r.db.WithContext(ctx), id)
}

// CreateTag inserts tag and links it to productIDs in one transaction.
func (r *TagsRepository) CreateTag(ctx context.Context, tag *Tag, productIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productIDs = UniqueIDs(productIDs)
		if err := ensureExist(tx, &Product{}, "product", productIDs); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(tag).Error; err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
		if _, err := tagLinks.reconcile(tx, tag.ID, productIDs); err != nil {
			return err
		}

		created, err := loadTag(tx, tag.ID)
		if err != nil {
			return err
		}
		*tag = *created
		return nil
	})
}

// UpdateTag applies changes to the tag with the given id, reconciling its
// products when changes.ProductIDs is non-nil.
func (r *TagsRepository) UpdateTag(ctx context.Context, id uint, changes TagChanges) (LinkPlan, error) {
	var plan LinkPlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag Tag
		if err := tx.Select("id").First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return fmt.Errorf("find tag: %w", err)
		}

		if changes.TagName != nil {
			if err := tx.Model(&tag).Update("tag_name", *changes.TagName).Error; err != nil {
				return fmt.Errorf("update tag: %w", err)
			}
		}

		if changes.ProductIDs == nil {
			return nil
		}
		productIDs := UniqueIDs(changes.ProductIDs)
		if err := ensureExist(tx, &Product{}, "product", productIDs); err != nil {
			return err
		}
		var err error
		plan, err = tagLinks.reconcile(tx, id, productIDs)
		return err
	})
	if err != nil {
		return LinkPlan{}, err
	}
	return plan, nil
}

// DeleteTag removes the tag and its product_tag rows.
func (r *TagsRepository) DeleteTag(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&ProductTag{}).Error; err != nil {
			return fmt.Errorf("delete product tags: %w", err)
		}
		res := tx.Delete(&Tag{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete tag: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTagNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

func loadTag(db *gorm.DB, id uint) (*Tag, error) {
	var tag Tag
	if err := db.Preload("Products", orderByID).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}
