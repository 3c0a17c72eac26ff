package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type Category string

const (
	CategoryKitchen  Category = "KITCHEN"
	CategoryBathroom Category = "BATHROOM"
	CategoryBedroom  Category = "BEDROOM"
	CategoryLiving   Category = "LIVING"
	CategoryGeneral  Category = "GENERAL"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryKitchen, CategoryBathroom, CategoryBedroom, CategoryLiving, CategoryGeneral:
		return true
	}
	return false
}

// MaxImagesPerEntity caps the gallery size for products and project
// showcases. Enforced at the write boundary, not by a schema constraint.
const MaxImagesPerEntity = 6

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    Category       `gorm:"type:varchar(50);index" json:"category"`
	Height      *float64       `json:"height"`
	Width       *float64       `json:"width"`
	Depth       *float64       `json:"depth"`
	Weight      *float64       `json:"weight"`
	Material    *string        `gorm:"type:varchar(255)" json:"material"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images"`
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
}
