package models

import (
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "PENDING"
	OrderStatusInProduction OrderStatus = "IN_PRODUCTION"
	OrderStatusInTransit    OrderStatus = "IN_TRANSIT"
	OrderStatusCompleted    OrderStatus = "COMPLETED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

// orderStatusTransitions is the fulfilment graph. COMPLETED and CANCELLED are
// terminal; everything before them can still be cancelled.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction: {OrderStatusInTransit, OrderStatusCancelled},
	OrderStatusInTransit:    {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:    {},
	OrderStatusCancelled:    {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) NextStatuses() []OrderStatus {
	return orderStatusTransitions[s]
}

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName    string      `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerEmail   string      `gorm:"type:varchar(255);not null" json:"customerEmail"`
	CustomerPhone   string      `gorm:"type:varchar(50);not null" json:"customerPhone"`
	CustomerAddress string      `gorm:"type:text;not null" json:"customerAddress"`
	TotalPrice      float64     `gorm:"not null" json:"totalPrice"`
	Status          OrderStatus `gorm:"type:varchar(50);index" json:"status"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// ShortCode is the customer-facing order number: the first 8 characters of
// the uuid, uppercased. Public lookup matches on it case-insensitively.
func (o *Order) ShortCode() string {
	return strings.ToUpper(o.ID.String()[:8])
}

// OrderItem keeps only a soft reference to the product: the product row may be
// deleted later while the order keeps its snapshotted price.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64   `gorm:"not null" json:"priceAtPurchase"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
