package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	uuid "github.com/satori/go.uuid"
)

// BlobKeyFromURL recovers the object key from a stored public URL. Keys are
// flat (no slashes), so the last path segment is the whole key.
func BlobKeyFromURL(url string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return url
	}
	return url[idx+1:]
}

// NewBlobKey builds a random object key, keeping the original extension so
// the public URL stays recognizable as an image.
func NewBlobKey(prefix, fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		ext = "jpg"
	}
	if prefix != "" {
		return fmt.Sprintf("%s_%s.%s", prefix, uuid.NewV4(), ext)
	}
	return fmt.Sprintf("%s.%s", uuid.NewV4(), ext)
}
