// Package imagestore validates and persists uploaded recipe images.
package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

var ErrInvalidImage = errors.New("file is not a decodable image")

const uploadDir = "recipes"

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// Save verifies that the payload decodes as an image and writes it under
// a fresh random identifier. Only the extension of the original filename
// survives; the name itself is discarded, so user-supplied names can
// neither collide nor escape the media root. It returns the stored path
// relative to the root.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = "." + format
	}

	relPath := filepath.Join(uploadDir, uuid.New().String()+ext)
	fullPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return relPath, nil
}

// Remove deletes a previously stored image. Paths outside the media root
// are refused.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}

	fullPath := filepath.Join(s.root, filepath.Clean(relPath))

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return err
	}

	pathAbs, err := filepath.Abs(fullPath)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(pathAbs, rootAbs+string(os.PathSeparator)) {
		return fmt.Errorf("path %q escapes media root", relPath)
	}

	return os.Remove(fullPath)
}
