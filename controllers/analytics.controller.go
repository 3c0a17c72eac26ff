package controllers

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"

	"girolimob/initializers"
	"girolimob/models"
)

const adminPathPrefix = "/admin"

func RecordProductClick(c *fiber.Ctx) error {
	type ClickRequest struct {
		ProductID uuid.UUID `json:"productId"`
	}

	var req ClickRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Product ID is required",
		})
	}

	var product models.Product
	if err := initializers.DB.First(&product, "id = ?", req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	click := models.ProductClick{ID: uuid.NewV4(), ProductID: req.ProductID}
	if err := initializers.DB.Create(&click).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to record click",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

func RecordSiteVisit(c *fiber.Ctx) error {
	type VisitRequest struct {
		Path string `json:"path"`
	}

	var req VisitRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Path is required",
		})
	}

	// Back-office traffic is not storefront traffic.
	if strings.HasPrefix(req.Path, adminPathPrefix) {
		return c.JSON(fiber.Map{
			"status":  "success",
			"skipped": true,
		})
	}

	visit := models.SiteVisit{ID: uuid.NewV4(), Path: req.Path}
	if err := initializers.DB.Create(&visit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to record visit",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

type productClickStat struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductTitle string    `json:"productTitle"`
	ClickCount   int64     `json:"clickCount"`
}

type productOrderStat struct {
	ProductID     uuid.UUID `json:"productId"`
	ProductTitle  string    `json:"productTitle"`
	TotalQuantity int       `json:"totalQuantity"`
	OrderCount    int       `json:"orderCount"`
}

type dailyVisitStat struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func GetAnalyticsStats(c *fiber.Ctx) error {
	db := initializers.DB

	// Clicks per product, most clicked first.
	var clickRows []struct {
		ProductID uuid.UUID
		Count     int64
	}
	err := db.Model(&models.ProductClick{}).
		Select("product_id, COUNT(*) as count").
		Group("product_id").
		Order("count DESC").
		Scan(&clickRows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch analytics",
		})
	}

	var clickItems []models.OrderItem
	for _, row := range clickRows {
		clickItems = append(clickItems, models.OrderItem{ProductID: row.ProductID})
	}
	clickTitles := productTitles(clickItems)

	productClicks := make([]productClickStat, 0, len(clickRows))
	for _, row := range clickRows {
		title, ok := clickTitles[row.ProductID]
		if !ok {
			title = DeletedProductLabel
		}
		productClicks = append(productClicks, productClickStat{
			ProductID:    row.ProductID,
			ProductTitle: title,
			ClickCount:   row.Count,
		})
	}

	// Ordered quantities per product over completed orders, counting each
	// order once however many line items reference the same product.
	var completedItems []models.OrderItem
	err = db.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderStatusCompleted).
		Find(&completedItems).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch analytics",
		})
	}

	type orderAgg struct {
		quantity int
		orders   map[uuid.UUID]bool
	}
	aggByProduct := make(map[uuid.UUID]*orderAgg)
	for _, item := range completedItems {
		agg, ok := aggByProduct[item.ProductID]
		if !ok {
			agg = &orderAgg{orders: make(map[uuid.UUID]bool)}
			aggByProduct[item.ProductID] = agg
		}
		agg.quantity += item.Quantity
		agg.orders[item.OrderID] = true
	}

	orderTitles := productTitles(completedItems)
	productOrders := make([]productOrderStat, 0, len(aggByProduct))
	for productID, agg := range aggByProduct {
		title, ok := orderTitles[productID]
		if !ok {
			title = DeletedProductLabel
		}
		productOrders = append(productOrders, productOrderStat{
			ProductID:     productID,
			ProductTitle:  title,
			TotalQuantity: agg.quantity,
			OrderCount:    len(agg.orders),
		})
	}
	sort.Slice(productOrders, func(i, j int) bool {
		return productOrders[i].TotalQuantity > productOrders[j].TotalQuantity
	})

	// Storefront visits per day over the last 30 days, zero-filled.
	now := time.Now()
	windowStart := now.AddDate(0, 0, -29).Truncate(24 * time.Hour)

	var visits []models.SiteVisit
	err = db.Where("visited_at >= ? AND path NOT LIKE ?", windowStart, adminPathPrefix+"%").
		Order("visited_at ASC").
		Find(&visits).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch analytics",
		})
	}

	visitsByDate := make(map[string]int64)
	for _, visit := range visits {
		visitsByDate[visit.VisitedAt.Format("2006-01-02")]++
	}

	siteVisits := make([]dailyVisitStat, 0, 30)
	for i := 29; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		siteVisits = append(siteVisits, dailyVisitStat{
			Date:  date,
			Count: visitsByDate[date],
		})
	}

	// Summary totals. Admin paths stay out of the visit count here too.
	var totalClicks, totalVisits, totalOrders, pendingOrders int64
	db.Model(&models.ProductClick{}).Count(&totalClicks)
	db.Model(&models.SiteVisit{}).Where("path NOT LIKE ?", adminPathPrefix+"%").Count(&totalVisits)
	db.Model(&models.Order{}).Count(&totalOrders)
	db.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{
			models.OrderStatusPending,
			models.OrderStatusInProduction,
			models.OrderStatusInTransit,
		}).
		Count(&pendingOrders)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"productClicks": productClicks,
			"productOrders": productOrders,
			"siteVisits":    siteVisits,
			"totals": fiber.Map{
				"productClicks": totalClicks,
				"siteVisits":    totalVisits,
				"orders":        totalOrders,
				"pendingOrders": pendingOrders,
			},
		},
	})
}
