package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
	"girolimob/middleware"
)

func UploadRoutes(api fiber.Router) {
	api.Post("/upload", middleware.DeserializeAdmin, controllers.UploadFile)
}
