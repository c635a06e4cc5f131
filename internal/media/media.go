// Package media stores uploaded images and hands back durable URLs.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize caps uploads at 5 MiB.
const MaxImageSize = 5 << 20

// ErrBadImage is returned for oversized, empty, or non-image payloads.
var ErrBadImage = errors.New("unsupported or invalid image")

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store saves an image and returns the URL it will be served from.
type Store interface {
	Save(data []byte) (string, error)
}

// DiskStore writes images to a local directory served under baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates dir if needed and returns a DiskStore.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Save validates data as an image, writes it under a fresh UUID name, and
// returns its public URL.
func (s *DiskStore) Save(data []byte) (string, error) {
	if len(data) == 0 || len(data) > MaxImageSize {
		return "", ErrBadImage
	}

	ext, ok := extByType[http.DetectContentType(data)]
	if !ok {
		return "", ErrBadImage
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image %s: %w", path, err)
	}

	return s.baseURL + "/" + name, nil
}

// DecodeBase64 accepts either a bare base64 string or a data URI
// ("data:image/png;base64,...") and returns the raw bytes.
func DecodeBase64(s string) ([]byte, error) {
	if idx := strings.Index(s, ";base64,"); idx >= 0 && strings.HasPrefix(s, "data:") {
		s = s[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decoding base64 image: %w", err)
	}
	return data, nil
}
