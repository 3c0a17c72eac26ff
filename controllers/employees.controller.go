package controllers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"

	"girolimob/initializers"
	"girolimob/models"
)

func GetEmployees(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := initializers.DB.Order("created_at DESC").Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch employees",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   employees,
	})
}

func GetEmployee(c *fiber.Ctx) error {
	var employee models.Employee
	if err := initializers.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Employee not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   employee,
	})
}

func CreateEmployee(c *fiber.Ctx) error {
	type EmployeeForm struct {
		Name        string `validate:"required"`
		Role        string `validate:"required"`
		Description string
	}

	form := EmployeeForm{
		Name:        c.FormValue("name"),
		Role:        c.FormValue("role"),
		Description: c.FormValue("description"),
	}
	if err := validate.Struct(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing or invalid employee fields",
		})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Image required",
		})
	}

	urls, err := uploadFormFiles(c.Context(), "employee", []*multipart.FileHeader{fh})
	if err != nil || len(urls) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to upload image",
		})
	}

	employee := models.Employee{
		ID:          uuid.NewV4(),
		Name:        form.Name,
		Role:        form.Role,
		Description: form.Description,
		ImageURL:    urls[0],
	}
	if err := initializers.DB.Create(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create employee",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   employee,
	})
}

func UpdateEmployee(c *fiber.Ctx) error {
	var employee models.Employee
	if err := initializers.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Employee not found",
		})
	}

	if name := c.FormValue("name"); name != "" {
		employee.Name = name
	}
	if role := c.FormValue("role"); role != "" {
		employee.Role = role
	}
	if description := c.FormValue("description"); description != "" {
		employee.Description = description
	}

	// A replacement photo retires the old blob first, best-effort.
	if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
		deleteBlobByURL(c.Context(), employee.ImageURL)

		urls, err := uploadFormFiles(c.Context(), "employee", []*multipart.FileHeader{fh})
		if err != nil || len(urls) == 0 {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to upload image",
			})
		}
		employee.ImageURL = urls[0]
	}

	if err := initializers.DB.Save(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update employee",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   employee,
	})
}

func DeleteEmployee(c *fiber.Ctx) error {
	var employee models.Employee
	if err := initializers.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Employee not found",
		})
	}

	deleteBlobByURL(c.Context(), employee.ImageURL)

	if err := initializers.DB.Delete(&employee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete employee",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
