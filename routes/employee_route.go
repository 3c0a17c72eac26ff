package routes

import (
	"github.com/gofiber/fiber/v2"

	"girolimob/controllers"
	"girolimob/middleware"
)

func EmployeeRoutes(api fiber.Router) {
	employees := api.Group("/employees")

	employees.Get("/", controllers.GetEmployees)
	employees.Get("/:id", controllers.GetEmployee)

	employees.Post("/", middleware.DeserializeAdmin, controllers.CreateEmployee)
	employees.Patch("/:id", middleware.DeserializeAdmin, controllers.UpdateEmployee)
	employees.Delete("/:id", middleware.DeserializeAdmin, controllers.DeleteEmployee)
}
