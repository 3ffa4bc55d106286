package models

// Tag is a free-form label that can be attached to many products.
type Tag struct {
	ID       uint      `gorm:"primaryKey"`
	TagName  *string
	Products []Product `gorm:"many2many:product_tag;constraint:OnDelete:CASCADE"`
}

func (t *Tag) TableName() string {
	return "tag"
}

// TagChanges carries the fields of a tag update. ProductIDs replaces the
// tag's products when non-nil, even if empty.
type TagChanges struct {
	TagName    *string
	ProductIDs []uint
}
