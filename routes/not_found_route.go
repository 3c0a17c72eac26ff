package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NotFoundRoute func for describe 404 Error route.
func NotFoundRoute(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		// Static assets are served elsewhere; don't swallow them here.
		if strings.HasPrefix(c.Path(), "/s/") || strings.HasPrefix(c.Path(), "/public/") {
			return c.Next()
		}

		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "sorry, endpoint is not found",
		})
	})
}
