package models

import (
	"fmt"

	"gorm.io/gorm"
)

// ProductTag links one product to one tag. A pair appears at most once.
type ProductTag struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_product_tag_pair"`
	TagID     uint `gorm:"not null;uniqueIndex:idx_product_tag_pair;index"`
}

func (pt *ProductTag) TableName() string {
	return "product_tag"
}

// SetupJoinTables makes gorm use ProductTag as the product_tag join model
// for both sides of the association. It must run once per *gorm.DB.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Product{}, "Tags", &ProductTag{}); err != nil {
		return fmt.Errorf("setup product tags join table: %w", err)
	}
	if err := db.SetupJoinTable(&Tag{}, "Products", &ProductTag{}); err != nil {
		return fmt.Errorf("setup tag products join table: %w", err)
	}
	return nil
}

// AutoMigrate creates or updates the catalog schema with gorm. Production
// deployments use the SQL migrations instead; this serves tests and local runs.
func AutoMigrate(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}
	return db.AutoMigrate(&Category{}, &Product{}, &Tag{}, &ProductTag{})
}
