package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	uuid "github.com/satori/go.uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"girolimob/initializers"
	"girolimob/middleware"
	"girolimob/models"
	"girolimob/routes"
	"girolimob/utils"
)

// fakeStorage stands in for the S3 bucket and records every call, so tests
// can assert how many uploads and deletes a request caused.
type fakeStorage struct {
	mu         sync.Mutex
	uploads    []string
	deletes    []string
	failDelete bool
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, key)
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("bucket unreachable")
	}
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStorage) uploadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func (f *fakeStorage) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deletes)
}

func setupApp(t *testing.T) (*fiber.App, *fakeStorage) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Employee{},
		&models.ProjectShowcase{},
		&models.ProjectShowcaseImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
		&models.ProductClick{},
		&models.SiteVisit{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	initializers.DB = db
	initializers.AppConfig = &initializers.Config{JwtSecret: "test-secret"}
	storage := &fakeStorage{}
	initializers.Storage = storage

	app := fiber.New()
	api := app.Group("/api")
	routes.AuthRoutes(api)
	routes.ProductRoutes(api)
	routes.EmployeeRoutes(api)
	routes.ShowcaseRoutes(api)
	routes.OrderRoutes(api)
	routes.AnalyticsRoutes(api)
	routes.UploadRoutes(api)
	routes.NotFoundRoute(app)

	return app, storage
}

func seedAdmin(t *testing.T, email, password string) models.Admin {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin := models.Admin{ID: uuid.NewV4(), Email: email, Password: hashed}
	if err := initializers.DB.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return admin
}

// adminCookie builds a valid session cookie without going through the login
// endpoint, for tests that only need an authenticated caller.
func adminCookie(t *testing.T, admin models.Admin) *http.Cookie {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": admin.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(initializers.AppConfig.JwtSecret))
	if err != nil {
		t.Fatalf("failed to sign session token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// multipartRequest builds a form request with the given fields and, per file
// field, one small payload per listed filename.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files map[string][]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	for field, names := range files {
		for _, name := range names {
			fw, err := w.CreateFormFile(field, name)
			if err != nil {
				t.Fatalf("failed to create form file: %v", err)
			}
			if _, err := fw.Write([]byte("fake image bytes")); err != nil {
				t.Fatalf("failed to write form file: %v", err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}
