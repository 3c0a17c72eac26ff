package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	uuid "github.com/satori/go.uuid"

	"girolimob/initializers"
	"girolimob/models"
)

const SessionCookie = "admin_session"

// DeserializeAdmin resolves the session cookie to an admin record and stores
// it in the request locals. Admin-only routes sit behind it; a missing or
// invalid session short-circuits with 401 before any handler runs.
func DeserializeAdmin(c *fiber.Ctx) error {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "You are not logged in",
		})
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(initializers.AppConfig.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired session",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired session",
		})
	}

	adminID, err := uuid.FromString(fmt.Sprint(claims["sub"]))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired session",
		})
	}

	var admin models.Admin
	if err := initializers.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "The admin belonging to this session no longer exists",
		})
	}

	c.Locals("admin", admin.Response())
	return c.Next()
}
