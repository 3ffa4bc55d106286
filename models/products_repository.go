package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ProductFilters narrows a product listing. Zero values disable a filter.
type ProductFilters struct {
	CategoryID    *uint
	PriceLessThan *decimal.Decimal
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, filters ProductFilters) ([]Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags", orderByID).
		Order("product.id")

	if filters.CategoryID != nil {
		query = query.Where("product.category_id = ?", *filters.CategoryID)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("product.price < ?", *filters.PriceLessThan)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	return loadProduct(r.db.WithContext(ctx), id)
}

// CreateProduct inserts product and links it to tagIDs in one transaction.
// Unknown tag or category ids abort the whole write. On success product is
// reloaded with its category and tags.
func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if product.CategoryID != nil {
			if err := ensureExist(tx, &Category{}, "category", []uint{*product.CategoryID}); err != nil {
				return err
			}
		}
		tagIDs = UniqueIDs(tagIDs)
		if err := ensureExist(tx, &Tag{}, "tag", tagIDs); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if _, err := productLinks.reconcile(tx, product.ID, tagIDs); err != nil {
			return err
		}

		created, err := loadProduct(tx, product.ID)
		if err != nil {
			return err
		}
		*product = *created
		return nil
	})
}

// UpdateProduct applies changes to the product with the given id. When
// changes.TagIDs is non-nil the product's tags are reconciled against it and
// the applied plan is returned.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, changes ProductChanges) (LinkPlan, error) {
	var plan LinkPlan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.Select("id").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("find product: %w", err)
		}

		if changes.CategoryID != nil && !changes.ClearCategory {
			if err := ensureExist(tx, &Category{}, "category", []uint{*changes.CategoryID}); err != nil {
				return err
			}
		}
		if cols := changes.columns(); len(cols) > 0 {
			if err := tx.Model(&product).Updates(cols).Error; err != nil {
				return fmt.Errorf("update product: %w", err)
			}
		}

		if changes.TagIDs == nil {
			return nil
		}
		tagIDs := UniqueIDs(changes.TagIDs)
		if err := ensureExist(tx, &Tag{}, "tag", tagIDs); err != nil {
			return err
		}
		var err error
		plan, err = productLinks.reconcile(tx, id, tagIDs)
		return err
	})
	if err != nil {
		return LinkPlan{}, err
	}
	return plan, nil
}

// DeleteProduct removes the product and its product_tag rows.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&ProductTag{}).Error; err != nil {
			return fmt.Errorf("delete product tags: %w", err)
		}
		res := tx.Delete(&Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

func loadProduct(db *gorm.DB, id uint) (*Product, error) {
	var product Product
	if err := db.
		Preload("Category").
		Preload("Tags", orderByID).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}
