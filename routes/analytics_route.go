package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
	"girolimob/middleware"
)

func AnalyticsRoutes(api fiber.Router) {
	analytics := api.Group("/analytics")

	analytics.Post("/product-click", controllers.RecordProductClick)
	analytics.Post("/site-visit", controllers.RecordSiteVisit)

	analytics.Get("/stats", middleware.DeserializeAdmin, controllers.GetAnalyticsStats)
}
