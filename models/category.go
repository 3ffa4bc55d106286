package models

// Category represents a product category.
// A category owns zero or more products; deleting it detaches them.
type Category struct {
	ID           uint      `gorm:"primaryKey"`
	CategoryName string    `gorm:"not null"`
	Products     []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (c *Category) TableName() string {
	return "category"
}
