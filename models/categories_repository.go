package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Preload("Products", orderByID).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) GetCategoryByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).
		Preload("Products", orderByID).
		First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// UpdateCategory renames the category and returns the number of rows updated.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uint, name string) (int64, error) {
	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.Select("id").First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return fmt.Errorf("find category: %w", err)
		}
		res := tx.Model(&category).Update("category_name", name)
		if res.Error != nil {
			return fmt.Errorf("update category: %w", res.Error)
		}
		updated = res.RowsAffected
		return nil
	})
	return updated, err
}

// DeleteCategory removes the category. Its products are kept and detached
// (category_id set to NULL).
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach category products: %w", err)
		}
		res := tx.Delete(&Category{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// CountCategories returns the number of stored categories.
func (r *CategoriesRepository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}
