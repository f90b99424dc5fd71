// Package upload stores request attachments and profile images on disk and
// validates them before acceptance.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrBadFileType = errors.New("only image files (JPEG, JPG, PNG, GIF) and PDF files are allowed")
)

// allowed extensions, matching the declared MIME type as well
var allowedExts = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
}

// Store persists uploaded files and hands back the public path to keep in the
// database. Implementations must be safe for concurrent use.
type Store interface {
	Save(category, originalName string, data []byte) (string, error)
	Delete(path string) error
}

// DiskStore writes files under Root, served statically at /uploads.
type DiskStore struct {
	Root     string
	MaxBytes int64
}

func NewDiskStore(root string, maxBytes int64) *DiskStore {
	return &DiskStore{Root: root, MaxBytes: maxBytes}
}

// Validate rejects files above the size cap or outside the allowed types.
// Both the file extension and the declared content type must match.
func Validate(name, contentType string, size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(name))
	want, ok := allowedExts[ext]
	if !ok {
		return ErrBadFileType
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct != "" && !strings.HasPrefix(ct, want) && ct != "image/jpg" {
		return ErrBadFileType
	}
	return nil
}

func (s *DiskStore) Save(category, originalName string, data []byte) (string, error) {
	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExts[ext]; !ok {
		return "", ErrBadFileType
	}

	dir := filepath.Join(s.Root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + category + "/" + name, nil
}

func (s *DiskStore) Delete(path string) error {
	rel, ok := strings.CutPrefix(path, "/uploads/")
	if !ok || strings.Contains(rel, "..") {
		return errors.New("invalid upload path")
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ParseDataURI decodes a base64 data URI like "data:image/png;base64,....",
// returning the raw bytes and a file extension for the declared media type.
func ParseDataURI(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, "", errors.New("not an image data URI")
	}
	rest := strings.TrimPrefix(uri, "data:image/")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", errors.New("malformed data URI")
	}
	ext := "." + strings.ToLower(rest[:sep])
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if _, ok := allowedExts[ext]; !ok {
		return nil, "", ErrBadFileType
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return data, ext, nil
}
