package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
	"girolimob/middleware"
)

func OrderRoutes(api fiber.Router) {
	orders := api.Group("/orders")

	orders.Post("/", controllers.CreateOrder)
	orders.Get("/public/:id", controllers.GetPublicOrder)

	orders.Get("/", middleware.DeserializeAdmin, controllers.GetOrders)
	orders.Patch("/:id", middleware.DeserializeAdmin, controllers.UpdateOrderStatus)
	orders.Delete("/:id", middleware.DeserializeAdmin, controllers.DeleteOrder)
}
