package utils

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Paginate applies page/limit query parameters to the prepared query and
// fills out, returning the listing metadata.
func Paginate(c *fiber.Ctx, db *gorm.DB, out interface{}) (*Pagination, error) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "15"))
	if err != nil || limit < 1 {
		limit = 15
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Model(out).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Find(out).Error; err != nil {
		return nil, err
	}

	return &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
