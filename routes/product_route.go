package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
	"girolimob/middleware"
)

func ProductRoutes(api fiber.Router) {
	products := api.Group("/products")

	products.Get("/", controllers.GetProducts)
	products.Get("/public/:id", controllers.GetPublicProduct)

	products.Post("/", middleware.DeserializeAdmin, controllers.CreateProduct)
	products.Get("/:id", middleware.DeserializeAdmin, controllers.GetProduct)
	products.Patch("/:id", middleware.DeserializeAdmin, controllers.UpdateProduct)
	products.Delete("/:id", middleware.DeserializeAdmin, controllers.DeleteProduct)
	products.Post("/:id/add-images", middleware.DeserializeAdmin, controllers.AddProductImages)
	products.Delete("/:id/images/:imgId", middleware.DeserializeAdmin, controllers.DeleteProductImage)
}
