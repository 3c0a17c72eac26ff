package controllers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestUploadFileIsAdminOnly(t *testing.T) {
	app, storage := setupApp(t)

	req := multipartRequest(t, http.MethodPost, "/api/upload",
		nil, map[string][]string{"file": {"banner.png"}})
	if resp := doRequest(t, app, req); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
	if storage.uploadCount() != 0 {
		t.Errorf("expected nothing uploaded, got %d", storage.uploadCount())
	}

	admin := seedAdmin(t, "admin@girolimob.com", "secret123")
	req = multipartRequest(t, http.MethodPost, "/api/upload",
		nil, map[string][]string{"file": {"banner.png"}})
	req.AddCookie(adminCookie(t, admin))

	resp := doRequest(t, app, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data := decodeBody(t, resp)["data"].(map[string]interface{})
	url := data["url"].(string)
	if !strings.HasPrefix(url, "https://cdn.test/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("unexpected upload URL %q", url)
	}
}

func TestUploadFileRequiresFile(t *testing.T) {
	app, _ := setupApp(t)
	admin := seedAdmin(t, "admin@girolimob.com", "secret123")

	req := multipartRequest(t, http.MethodPost, "/api/upload", map[string]string{"note": "x"}, nil)
	req.AddCookie(adminCookie(t, admin))
	if resp := doRequest(t, app, req); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
