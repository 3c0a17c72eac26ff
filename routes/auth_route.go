package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
)

func AuthRoutes(api fiber.Router) {
	auth := api.Group("/auth")
	auth.Post("/login", controllers.Login)
	auth.Post("/logout", controllers.Logout)
}
