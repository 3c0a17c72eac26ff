package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// AdminResponse is what the session middleware puts into the request locals.
type AdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

func (a *Admin) Response() AdminResponse {
	return AdminResponse{ID: a.ID, Email: a.Email}
}
