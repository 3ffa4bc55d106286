package models

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// DefaultStock is applied when a product is created without a stock level.
	DefaultStock = 10

	// MaxID is the largest id a SERIAL column can hold.
	MaxID = math.MaxInt32
)

// Product represents a product in the catalog.
// It belongs to at most one category and is linked to tags through product_tag.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	ProductName string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null"`
	CategoryID  *uint           `gorm:"index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Tags        []Tag           `gorm:"many2many:product_tag;constraint:OnDelete:CASCADE"`
}

func (p *Product) TableName() string {
	return "product"
}

// ProductChanges carries the fields of a product update. Nil fields are left
// untouched. ClearCategory detaches the product from its category and wins
// over CategoryID. TagIDs replaces the product's tags when non-nil, even if
// empty.
type ProductChanges struct {
	ProductName   *string
	Price         *decimal.Decimal
	Stock         *int
	CategoryID    *uint
	ClearCategory bool
	TagIDs        []uint
}

func (c ProductChanges) columns() map[string]any {
	cols := make(map[string]any)
	if c.ProductName != nil {
		cols["product_name"] = *c.ProductName
	}
	if c.Price != nil {
		cols["price"] = *c.Price
	}
	if c.Stock != nil {
		cols["stock"] = *c.Stock
	}
	switch {
	case c.ClearCategory:
		cols["category_id"] = nil
	case c.CategoryID != nil:
		cols["category_id"] = *c.CategoryID
	}
	return cols
}
