package controllers

import (
	"math"
	"strings"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"girolimob/initializers"
	"girolimob/models"
	"girolimob/utils"
)

// DeletedProductLabel stands in for products removed after being ordered.
const DeletedProductLabel = "Deleted product"

func CreateOrder(c *fiber.Ctx) error {
	type OrderItemRequest struct {
		ProductID       uuid.UUID `json:"productId" validate:"required"`
		Quantity        int       `json:"quantity" validate:"required,min=1"`
		PriceAtPurchase float64   `json:"priceAtPurchase" validate:"min=0"`
	}

	type OrderRequest struct {
		CustomerName    string             `json:"customerName" validate:"required"`
		CustomerEmail   string             `json:"customerEmail" validate:"required,email"`
		CustomerPhone   string             `json:"customerPhone" validate:"required"`
		CustomerAddress string             `json:"customerAddress" validate:"required"`
		TotalPrice      float64            `json:"totalPrice" validate:"min=0"`
		Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	}

	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing or invalid order fields",
		})
	}

	// The item prices are the client's snapshot, but the total is ours to
	// compute. A disagreeing client total is rejected outright.
	var total float64
	for _, item := range req.Items {
		total += item.PriceAtPurchase * float64(item.Quantity)
	}
	if math.Abs(total-req.TotalPrice) > 0.01 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Order total does not match the sum of its items",
		})
	}

	order := models.Order{
		ID:              uuid.NewV4(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		TotalPrice:      total,
		Status:          models.OrderStatusPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:              uuid.NewV4(),
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}

	// Order and items land together or not at all.
	if err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create order",
		})
	}

	utils.DispatchOrderEmails(initializers.AppConfig, order, productTitles(order.Items))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

// productTitles resolves the titles of every product still present, for
// emails and order views. Missing ids simply stay out of the map.
func productTitles(items []models.OrderItem) map[uuid.UUID]string {
	idSet := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, item := range items {
		if !idSet[item.ProductID] {
			idSet[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	titles := make(map[uuid.UUID]string)
	if len(ids) == 0 {
		return titles
	}

	var products []models.Product
	if err := initializers.DB.Select("id", "title").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return titles
	}
	for _, p := range products {
		titles[p.ID] = p.Title
	}
	return titles
}

func GetOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := initializers.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch orders",
		})
	}

	// One title lookup across all orders instead of one query per product.
	var allItems []models.OrderItem
	for _, order := range orders {
		allItems = append(allItems, order.Items...)
	}
	productMap := make(map[string]string)
	for id, title := range productTitles(allItems) {
		productMap[id.String()] = title
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       orders,
		"productMap": productMap,
	})
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status models.OrderStatus `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if !req.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid status",
		})
	}

	var order models.Order
	if err := initializers.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Order not found",
		})
	}

	if !order.Status.CanTransitionTo(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot transition order from " + string(order.Status) + " to " + string(req.Status),
		})
	}

	order.Status = req.Status
	if err := initializers.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update order",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

func DeleteOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := initializers.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Order not found",
		})
	}

	// Items first, order second; no soft delete.
	if err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete order",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

// GetPublicOrder looks an order up by an id prefix, the 8-character code
// customers get with their confirmation. Anyone holding the code can view
// the order; the code is the order number.
func GetPublicOrder(c *fiber.Ctx) error {
	prefix := strings.ToLower(c.Params("id"))

	var order models.Order
	err := initializers.DB.Preload("Items").
		Where("LOWER(CAST(id AS TEXT)) LIKE ?", prefix+"%").
		First(&order).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Order not found",
		})
	}

	titles := productTitles(order.Items)

	type publicItem struct {
		models.OrderItem
		Product fiber.Map `json:"product"`
	}
	items := make([]publicItem, 0, len(order.Items))
	for _, item := range order.Items {
		title, ok := titles[item.ProductID]
		if !ok {
			title = DeletedProductLabel
		}
		items = append(items, publicItem{
			OrderItem: item,
			Product:   fiber.Map{"title": title},
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"id":              order.ID,
			"customerName":    order.CustomerName,
			"customerEmail":   order.CustomerEmail,
			"customerPhone":   order.CustomerPhone,
			"customerAddress": order.CustomerAddress,
			"totalPrice":      order.TotalPrice,
			"status":          order.Status,
			"createdAt":       order.CreatedAt,
			"updatedAt":       order.UpdatedAt,
			"items":           items,
		},
	})
}
