package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// ProductClick and SiteVisit are append-only event rows, never updated or
// deleted individually. Reports aggregate over them.
type ProductClick struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	ClickedAt time.Time `gorm:"autoCreateTime;index" json:"clickedAt"`
}

type SiteVisit struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Path      string    `gorm:"type:varchar(255);not null" json:"path"`
	VisitedAt time.Time `gorm:"autoCreateTime;index" json:"visitedAt"`
}
