package controllers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"

	"girolimob/initializers"
	"girolimob/models"
)

func seedProduct(t *testing.T, title string, price float64) models.Product {
	t.Helper()
	product := models.Product{
		ID:          uuid.NewV4(),
		Title:       title,
		Description: "solid oak",
		Price:       price,
		Category:    models.CategoryGeneral,
	}
	if err := initializers.DB.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func seedOrder(t *testing.T, status models.OrderStatus, items []models.OrderItem) models.Order {
	t.Helper()
	var total float64
	for i := range items {
		items[i].ID = uuid.NewV4()
		total += items[i].PriceAtPurchase * float64(items[i].Quantity)
	}
	order := models.Order{
		ID:              uuid.NewV4(),
		CustomerName:    "Ion Popescu",
		CustomerEmail:   "ion@example.com",
		CustomerPhone:   "+40712345678",
		CustomerAddress: "Str. Fabricii 12, Cluj",
		TotalPrice:      total,
		Status:          status,
		Items:           items,
	}
	if err := initializers.DB.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order
}

func orderPayload(items []map[string]interface{}, total float64) map[string]interface{} {
	return map[string]interface{}{
		"customerName":    "Maria Ionescu",
		"customerEmail":   "maria@example.com",
		"customerPhone":   "+40711111111",
		"customerAddress": "Bd. Eroilor 3, Brasov",
		"totalPrice":      total,
		"items":           items,
	}
}

func TestCreateOrderPersistsSubmittedItems(t *testing.T) {
	app, _ := setupApp(t)

	// Catalog price differs from the submitted snapshot on purpose: item
	// prices are a trust boundary, the server stores them as sent.
	p1 := seedProduct(t, "Oak table", 999)
	p2 := seedProduct(t, "Oak chair", 999)

	payload := orderPayload([]map[string]interface{}{
		{"productId": p1.ID.String(), "quantity": 2, "priceAtPurchase": 100},
		{"productId": p2.ID.String(), "quantity": 1, "priceAtPurchase": 50},
	}, 250)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/orders", payload))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order).Error; err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("expected status PENDING, got %s", order.Status)
	}
	if order.TotalPrice != 250 {
		t.Errorf("expected total 250, got %v", order.TotalPrice)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.ProductID == p1.ID && item.PriceAtPurchase != 100 {
			t.Errorf("expected snapshot price 100, got %v", item.PriceAtPurchase)
		}
	}
}

func TestCreateOrderRejectsMismatchedTotal(t *testing.T) {
	app, _ := setupApp(t)
	p := seedProduct(t, "Oak table", 100)

	payload := orderPayload([]map[string]interface{}{
		{"productId": p.ID.String(), "quantity": 1, "priceAtPurchase": 100},
	}, 9999)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/orders", payload))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var count int64
	initializers.DB.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no orders persisted, got %d", count)
	}
}

func TestCreateOrderValidatesFields(t *testing.T) {
	app, _ := setupApp(t)
	p := seedProduct(t, "Oak table", 100)

	cases := []struct {
		name    string
		mutate  func(map[string]interface{})
	}{
		{"missing email", func(m map[string]interface{}) { delete(m, "customerEmail") }},
		{"empty items", func(m map[string]interface{}) { m["items"] = []map[string]interface{}{} }},
		{"zero quantity", func(m map[string]interface{}) {
			m["items"] = []map[string]interface{}{
				{"productId": p.ID.String(), "quantity": 0, "priceAtPurchase": 100},
			}
			m["totalPrice"] = 0
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := orderPayload([]map[string]interface{}{
				{"productId": p.ID.String(), "quantity": 1, "priceAtPurchase": 100},
			}, 100)
			tc.mutate(payload)

			resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/api/orders", payload))
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestUpdateOrderStatusFollowsTransitions(t *testing.T) {
	app, _ := setupApp(t)
	admin := seedAdmin(t, "admin@girolimob.com", "secret123")
	cookie := adminCookie(t, admin)

	p := seedProduct(t, "Oak table", 100)
	order := seedOrder(t, models.OrderStatusPending, []models.OrderItem{
		{ProductID: p.ID, Quantity: 1, PriceAtPurchase: 100},
	})

	patch := func(status string) *http.Response {
		req := jsonRequest(t, http.MethodPatch, "/api/orders/"+order.ID.String(), map[string]string{"status": status})
		req.AddCookie(cookie)
		return doRequest(t, app, req)
	}

	// Skipping a stage is rejected and leaves the row untouched.
	if resp := patch("COMPLETED"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for PENDING->COMPLETED, got %d", resp.StatusCode)
	}
	// Unknown literals never reach the state machine.
	if resp := patch("SHIPPED"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.StatusCode)
	}

	var current models.Order
	initializers.DB.First(&current, "id = ?", order.ID)
	if current.Status != models.OrderStatusPending {
		t.Fatalf("status changed by rejected PATCH: %s", current.Status)
	}

	for _, status := range []string{"IN_PRODUCTION", "IN_TRANSIT", "COMPLETED"} {
		if resp := patch(status); resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for transition to %s, got %d", status, resp.StatusCode)
		}
	}

	// COMPLETED is terminal.
	if resp := patch("CANCELLED"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for COMPLETED->CANCELLED, got %d", resp.StatusCode)
	}
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	app, _ := setupApp(t)
	admin := seedAdmin(t, "admin@girolimob.com", "secret123")
	cookie := adminCookie(t, admin)

	p := seedProduct(t, "Oak table", 100)
	order := seedOrder(t, models.OrderStatusPending, []models.OrderItem{
		{ProductID: p.ID, Quantity: 2, PriceAtPurchase: 100},
	})

	req := jsonRequest(t, http.MethodDelete, "/api/orders/"+order.ID.String(), nil)
	req.AddCookie(cookie)
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var orderCount, itemCount int64
	initializers.DB.Model(&models.Order{}).Count(&orderCount)
	initializers.DB.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Errorf("expected order and items gone, got %d orders and %d items", orderCount, itemCount)
	}
}

func TestPublicOrderLookupByPrefix(t *testing.T) {
	app, _ := setupApp(t)

	p := seedProduct(t, "Oak table", 100)
	deletedID := uuid.NewV4()
	order := seedOrder(t, models.OrderStatusPending, []models.OrderItem{
		{ProductID: p.ID, Quantity: 1, PriceAtPurchase: 100},
		{ProductID: deletedID, Quantity: 1, PriceAtPurchase: 50},
	})

	// The customer-facing code is uppercase; matching is case-insensitive.
	code := strings.ToUpper(order.ID.String()[:8])
	resp := doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/orders/public/"+code, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	if data["id"] != order.ID.String() {
		t.Errorf("expected order %s, got %v", order.ID, data["id"])
	}

	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	titles := map[string]string{}
	for _, raw := range items {
		item := raw.(map[string]interface{})
		product := item["product"].(map[string]interface{})
		titles[item["productId"].(string)] = product["title"].(string)
	}
	if titles[p.ID.String()] != "Oak table" {
		t.Errorf("expected resolved title, got %q", titles[p.ID.String()])
	}
	if titles[deletedID.String()] != "Deleted product" {
		t.Errorf("expected deleted product fallback, got %q", titles[deletedID.String()])
	}

	// Hex ids can never start with z; guaranteed miss.
	resp = doRequest(t, app, jsonRequest(t, http.MethodGet, "/api/orders/public/zzzzzzzz", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown prefix, got %d", resp.StatusCode)
	}
}

func TestGetOrdersReturnsProductMap(t *testing.T) {
	app, _ := setupApp(t)
	admin := seedAdmin(t, "admin@girolimob.com", "secret123")
	cookie := adminCookie(t, admin)

	p := seedProduct(t, "Oak table", 100)
	older := seedOrder(t, models.OrderStatusPending, []models.OrderItem{
		{ProductID: p.ID, Quantity: 1, PriceAtPurchase: 100},
	})
	initializers.DB.Model(&older).Update("created_at", time.Now().Add(-time.Hour))
	newer := seedOrder(t, models.OrderStatusPending, []models.OrderItem{
		{ProductID: p.ID, Quantity: 2, PriceAtPurchase: 100},
	})

	req := jsonRequest(t, http.MethodGet, "/api/orders", nil)
	req.AddCookie(cookie)
	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	orders := body["data"].([]interface{})
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	first := orders[0].(map[string]interface{})
	if first["id"] != newer.ID.String() {
		t.Errorf("expected newest order first, got %v", first["id"])
	}

	productMap := body["productMap"].(map[string]interface{})
	if productMap[p.ID.String()] != "Oak table" {
		t.Errorf("expected product map entry, got %v", productMap)
	}
}

func TestOrderAdminRoutesRequireSession(t *testing.T) {
	app, _ := setupApp(t)

	p := seedProduct(t, "Oak table", 100)
	order := seedOrder(t, models.OrderStatusPending, []models.OrderItem{
		{ProductID: p.ID, Quantity: 1, PriceAtPurchase: 100},
	})

	reqs := []*http.Request{
		jsonRequest(t, http.MethodGet, "/api/orders", nil),
		jsonRequest(t, http.MethodPatch, "/api/orders/"+order.ID.String(), map[string]string{"status": "IN_PRODUCTION"}),
		jsonRequest(t, http.MethodDelete, "/api/orders/"+order.ID.String(), nil),
	}
	for _, req := range reqs {
		resp := doRequest(t, app, req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", req.Method, req.URL.Path, resp.StatusCode)
		}
	}

	// The rejected PATCH must not have touched the row.
	var current models.Order
	initializers.DB.First(&current, "id = ?", order.ID)
	if current.Status != models.OrderStatusPending {
		t.Errorf("unauthenticated PATCH mutated status: %s", current.Status)
	}
}
