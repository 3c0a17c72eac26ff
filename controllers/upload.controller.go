package controllers

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"girolimob/initializers"
	"girolimob/utils"
)

// uploadFormFiles pushes every multipart file to the blob store and returns
// the public URLs in order.
func uploadFormFiles(ctx context.Context, prefix string, files []*multipart.FileHeader) ([]string, error) {
	var urls []string
	for _, fh := range files {
		if fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		url, err := initializers.Storage.Upload(ctx, utils.NewBlobKey(prefix, fh.Filename), f, fh.Size, fh.Header.Get("Content-Type"))
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// deleteBlobByURL is best-effort cleanup: a failed remote delete leaves an
// orphaned object behind, it never blocks the database write that follows.
func deleteBlobByURL(ctx context.Context, url string) {
	if err := initializers.Storage.Delete(ctx, utils.BlobKeyFromURL(url)); err != nil {
		log.Printf("Failed to delete blob %s: %v", url, err)
	}
}

// UploadFile is the generic admin upload: one file in, one public URL out.
func UploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "No file uploaded",
		})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Upload failed",
		})
	}
	defer f.Close()

	url, err := initializers.Storage.Upload(c.Context(), utils.NewBlobKey("", fh.Filename), f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Upload failed",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"url": url},
	})
}
