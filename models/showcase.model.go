package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type ProjectShowcase struct {
	ID          uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Title       string                 `gorm:"type:varchar(255);not null" json:"title"`
	Description string                 `gorm:"type:text" json:"description"`
	Category    Category               `gorm:"type:varchar(50);index" json:"category"`
	CreatedAt   time.Time              `gorm:"autoCreateTime" json:"createdAt"`
	Images      []ProjectShowcaseImage `gorm:"foreignKey:ShowcaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"images"`
}

type ProjectShowcaseImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShowcaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"showcaseId"`
	URL        string    `gorm:"type:text;not null" json:"url"`
}
