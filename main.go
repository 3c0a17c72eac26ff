package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"girolimob/initializers"
	"girolimob/routes"
)

func init() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}
	initializers.AppConfig = &config

	initializers.ConnectDB(&config)
	initializers.Migrate()
	initializers.SeedAdmin(&config)
	initializers.ConnectStorage(&config)
}

func main() {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     initializers.AppConfig.ClientOrigin,
		AllowMethods:     "GET,POST,PATCH,DELETE",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	api := app.Group("/api")
	routes.AuthRoutes(api)
	routes.ProductRoutes(api)
	routes.EmployeeRoutes(api)
	routes.ShowcaseRoutes(api)
	routes.OrderRoutes(api)
	routes.AnalyticsRoutes(api)
	routes.UploadRoutes(api)

	routes.NotFoundRoute(app)

	log.Fatal(app.Listen(":" + initializers.AppConfig.ServerPort))
}
