package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
	"girolimob/middleware"
)

func ShowcaseRoutes(api fiber.Router) {
	showcases := api.Group("/project-showcases")

	showcases.Get("/", controllers.GetShowcases)
	showcases.Get("/:id", controllers.GetShowcase)

	showcases.Post("/", middleware.DeserializeAdmin, controllers.CreateShowcase)
	showcases.Patch("/:id", middleware.DeserializeAdmin, controllers.UpdateShowcase)
	showcases.Delete("/:id", middleware.DeserializeAdmin, controllers.DeleteShowcase)
	showcases.Post("/:id/add-images", middleware.DeserializeAdmin, controllers.AddShowcaseImages)
	showcases.Delete("/:id/images/:imgId", middleware.DeserializeAdmin, controllers.DeleteShowcaseImage)
}
