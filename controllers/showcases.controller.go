package controllers

import (
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"girolimob/initializers"
	"girolimob/models"
)

// GetShowcases returns every showcase newest-first; the "about us" page
// groups them by category client-side.
func GetShowcases(c *fiber.Ctx) error {
	var showcases []models.ProjectShowcase
	if err := initializers.DB.Preload("Images").Order("created_at DESC").Find(&showcases).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch showcases",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   showcases,
	})
}

func getShowcaseByID(c *fiber.Ctx) (*models.ProjectShowcase, error) {
	var showcase models.ProjectShowcase
	err := initializers.DB.Preload("Images").First(&showcase, "id = ?", c.Params("id")).Error
	if err != nil {
		return nil, err
	}
	return &showcase, nil
}

func GetShowcase(c *fiber.Ctx) error {
	showcase, err := getShowcaseByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Showcase not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   showcase,
	})
}

func CreateShowcase(c *fiber.Ctx) error {
	type ShowcaseForm struct {
		Title       string `validate:"required"`
		Description string `validate:"required"`
		Category    models.Category
	}

	form := ShowcaseForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    models.Category(c.FormValue("category")),
	}
	if err := validate.Struct(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing or invalid showcase fields",
		})
	}
	if !form.Category.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid category",
		})
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid form data",
		})
	}
	images := multipartForm.File["images"]
	if len(images) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "At least one image required",
		})
	}
	if len(images) > models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Max 6 images allowed",
		})
	}

	urls, err := uploadFormFiles(c.Context(), "showcase", images)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to upload images",
		})
	}

	showcase := models.ProjectShowcase{
		ID:          uuid.NewV4(),
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
	}
	for _, url := range urls {
		showcase.Images = append(showcase.Images, models.ProjectShowcaseImage{
			ID:         uuid.NewV4(),
			ShowcaseID: showcase.ID,
			URL:        url,
		})
	}

	if err := initializers.DB.Create(&showcase).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create showcase",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   showcase,
	})
}

func UpdateShowcase(c *fiber.Ctx) error {
	type UpdateRequest struct {
		Title       string          `json:"title" validate:"required"`
		Description string          `json:"description" validate:"required"`
		Category    models.Category `json:"category"`
		Images      []string        `json:"images"`
		NewImages   []string        `json:"newImages"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing or invalid showcase fields",
		})
	}
	if !req.Category.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid category",
		})
	}

	showcase, err := getShowcaseByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Showcase not found",
		})
	}

	keep := make(map[string]bool, len(req.Images))
	for _, url := range req.Images {
		keep[url] = true
	}
	var kept, removed []models.ProjectShowcaseImage
	for _, img := range showcase.Images {
		if keep[img.URL] {
			kept = append(kept, img)
		} else {
			removed = append(removed, img)
		}
	}

	if len(kept)+len(req.NewImages) > models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Max 6 images allowed",
		})
	}

	for _, img := range removed {
		deleteBlobByURL(c.Context(), img.URL)
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if len(removed) > 0 {
			ids := make([]uuid.UUID, 0, len(removed))
			for _, img := range removed {
				ids = append(ids, img.ID)
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.ProjectShowcaseImage{}).Error; err != nil {
				return err
			}
		}
		for _, url := range req.NewImages {
			img := models.ProjectShowcaseImage{ID: uuid.NewV4(), ShowcaseID: showcase.ID, URL: url}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}

		showcase.Title = req.Title
		showcase.Description = req.Description
		showcase.Category = req.Category
		showcase.Images = nil
		return tx.Omit("Images").Save(showcase).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update showcase",
		})
	}

	updated, err := getShowcaseByID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch showcase",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   updated,
	})
}

func DeleteShowcase(c *fiber.Ctx) error {
	showcase, err := getShowcaseByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Showcase not found",
		})
	}

	for _, img := range showcase.Images {
		deleteBlobByURL(c.Context(), img.URL)
	}

	if err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("showcase_id = ?", showcase.ID).Delete(&models.ProjectShowcaseImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProjectShowcase{}, "id = ?", showcase.ID).Error
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete showcase",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

// AddShowcaseImages mirrors the product gallery endpoint: cap checked before
// any upload happens.
func AddShowcaseImages(c *fiber.Ctx) error {
	showcase, err := getShowcaseByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Showcase not found",
		})
	}

	if len(showcase.Images) >= models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Maximum 6 images allowed per showcase",
		})
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid form data",
		})
	}
	images := multipartForm.File["images"]
	if len(images) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "No images provided",
		})
	}
	if len(showcase.Images)+len(images) > models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Adding these images would exceed the 6 image limit",
		})
	}

	urls, err := uploadFormFiles(c.Context(), "showcase", images)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to upload images",
		})
	}

	for _, url := range urls {
		img := models.ProjectShowcaseImage{ID: uuid.NewV4(), ShowcaseID: showcase.ID, URL: url}
		if err := initializers.DB.Create(&img).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to save images",
			})
		}
	}

	updated, err := getShowcaseByID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch showcase",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   updated,
	})
}

func DeleteShowcaseImage(c *fiber.Ctx) error {
	var image models.ProjectShowcaseImage
	if err := initializers.DB.First(&image, "id = ?", c.Params("imgId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Image not found",
		})
	}
	if image.ShowcaseID.String() != c.Params("id") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Image not found",
		})
	}

	deleteBlobByURL(c.Context(), image.URL)

	if err := initializers.DB.Delete(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete image",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}
