package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"girolimob/initializers"
	"girolimob/models"
	"girolimob/utils"
)

// GetProducts is the public storefront listing: newest first, paginated,
// optionally narrowed to one category.
func GetProducts(c *fiber.Ctx) error {
	db := initializers.DB.Preload("Images").Order("created_at DESC")

	if category := models.Category(c.Query("category")); category != "" {
		if !category.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid category",
			})
		}
		db = db.Where("category = ?", category)
	}

	var products []models.Product
	pagination, err := utils.Paginate(c, db, &products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch products",
		})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       products,
		"pagination": pagination,
	})
}

func getProductByID(c *fiber.Ctx) (*models.Product, error) {
	var product models.Product
	err := initializers.DB.Preload("Images").First(&product, "id = ?", c.Params("id")).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func GetPublicProduct(c *fiber.Ctx) error {
	product, err := getProductByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

// GetProduct backs the admin edit page; same payload as the public detail.
func GetProduct(c *fiber.Ctx) error {
	return GetPublicProduct(c)
}

// parseOptionalFloat turns an absent or empty form field into nil rather than
// a silent zero.
func parseOptionalFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func CreateProduct(c *fiber.Ctx) error {
	type ProductForm struct {
		Title       string  `validate:"required"`
		Description string  `validate:"required"`
		Price       float64 `validate:"min=0"`
		Category    models.Category
	}

	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	form := ProductForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Category:    models.Category(c.FormValue("category")),
	}
	if err := validate.Struct(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing or invalid product fields",
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
	if len(images) > models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Max 6 images allowed",
		})
	}

	urls, err := uploadFormFiles(c.Context(), "product", images)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to upload images",
		})
	}

	product := models.Product{
		ID:          uuid.NewV4(),
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		Height:      parseOptionalFloat(c.FormValue("height")),
		Width:       parseOptionalFloat(c.FormValue("width")),
		Depth:       parseOptionalFloat(c.FormValue("depth")),
		Weight:      parseOptionalFloat(c.FormValue("weight")),
	}
	if material := c.FormValue("material"); material != "" {
		product.Material = &material
	}
	for _, url := range urls {
		product.Images = append(product.Images, models.ProductImage{
			ID:        uuid.NewV4(),
			ProductID: product.ID,
			URL:       url,
		})
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   product,
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	type UpdateRequest struct {
		Title       string          `json:"title" validate:"required"`
		Description string          `json:"description" validate:"required"`
		Price       float64         `json:"price" validate:"min=0"`
		Category    models.Category `json:"category"`
		Height      *float64        `json:"height"`
		Width       *float64        `json:"width"`
		Depth       *float64        `json:"depth"`
		Weight      *float64        `json:"weight"`
		Material    *string         `json:"material"`
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
			"message": "Missing or invalid product fields",
		})
	}
	if !req.Category.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid category",
		})
	}

	product, err := getProductByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	keep := make(map[string]bool, len(req.Images))
	for _, url := range req.Images {
		keep[url] = true
	}
	var kept, removed []models.ProductImage
	for _, img := range product.Images {
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

	// Remote cleanup first, best-effort; the row updates proceed regardless.
	for _, img := range removed {
		deleteBlobByURL(c.Context(), img.URL)
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if len(removed) > 0 {
			ids := make([]uuid.UUID, 0, len(removed))
			for _, img := range removed {
				ids = append(ids, img.ID)
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
		}
		for _, url := range req.NewImages {
			img := models.ProductImage{ID: uuid.NewV4(), ProductID: product.ID, URL: url}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}

		product.Title = req.Title
		product.Description = req.Description
		product.Price = req.Price
		product.Category = req.Category
		product.Height = req.Height
		product.Width = req.Width
		product.Depth = req.Depth
		product.Weight = req.Weight
		product.Material = req.Material
		product.Images = nil
		return tx.Omit("Images").Save(product).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update product",
		})
	}

	updated, err := getProductByID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch product",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   updated,
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	product, err := getProductByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	for _, img := range product.Images {
		deleteBlobByURL(c.Context(), img.URL)
	}

	if err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", product.ID).Error
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete product",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

// AddProductImages appends gallery images. The cap is checked before any
// upload, so an over-limit request touches neither the bucket nor the rows.
func AddProductImages(c *fiber.Ctx) error {
	product, err := getProductByID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Product not found",
		})
	}

	if len(product.Images) >= models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Maximum 6 images allowed per product",
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
	if len(product.Images)+len(images) > models.MaxImagesPerEntity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Adding these images would exceed the 6 image limit",
		})
	}

	urls, err := uploadFormFiles(c.Context(), "product", images)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to upload images",
		})
	}

	for _, url := range urls {
		img := models.ProductImage{ID: uuid.NewV4(), ProductID: product.ID, URL: url}
		if err := initializers.DB.Create(&img).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to save images",
			})
		}
	}

	updated, err := getProductByID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch product",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   updated,
	})
}

func DeleteProductImage(c *fiber.Ctx) error {
	var image models.ProductImage
	if err := initializers.DB.First(&image, "id = ?", c.Params("imgId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Image not found",
		})
	}
	if image.ProductID.String() != c.Params("id") {
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
