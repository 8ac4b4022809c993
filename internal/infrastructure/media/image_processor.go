// Package media provides the product image pipeline
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/security"
)

// Thumbnail widths generated for every product image.
var thumbnailWidths = []int{800, 400, 200}

// ImageProcessor stores product images under basePath and generates WebP
// thumbnails alongside the original.
type ImageProcessor struct {
	basePath string
}

// NewImageProcessor creates a new ImageProcessor instance
func NewImageProcessor(basePath string) *ImageProcessor {
	return &ImageProcessor{
		basePath: basePath,
	}
}

// ProcessProductImage handles a base64 product image upload. The stored
// filename is a fresh ULID so re-uploads never collide. Returns the relative
// URL of the original plus the thumbnail URLs.
func (p *ImageProcessor) ProcessProductImage(data string) (string, []string, error) {
	if data == "" {
		return "", nil, fmt.Errorf("empty base64 data")
	}

	ext := extractExtension(data)
	if ext == "" {
		return "", nil, fmt.Errorf("unsupported image format")
	}

	name := strings.ToLower(security.GenerateULID())
	filename := fmt.Sprintf("%s.%s", name, ext)

	productsDir := filepath.Join(p.basePath, "products")
	thumbsDir := filepath.Join(p.basePath, "thumbs")
	if err := os.MkdirAll(productsDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create products directory: %w", err)
	}
	if err := os.MkdirAll(thumbsDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create thumbs directory: %w", err)
	}

	originalPath, err := writeBinaryImage(data, filename, productsDir)
	if err != nil {
		return "", nil, err
	}

	thumbnailPaths, err := p.generateWebPThumbnails(originalPath, name, thumbsDir)
	if err != nil {
		os.Remove(originalPath)
		return "", nil, fmt.Errorf("failed to generate thumbnails: %w", err)
	}

	relativeOriginal := fmt.Sprintf("/media/products/%s", filename)
	relativeThumbnails := make([]string, len(thumbnailPaths))
	for i, thumbPath := range thumbnailPaths {
		relativeThumbnails[i] = fmt.Sprintf("/media/thumbs/%s", filepath.Base(thumbPath))
	}
	return relativeOriginal, relativeThumbnails, nil
}

// DeleteProductImage removes a stored product image and its thumbnails.
// Missing files are not an error.
func (p *ImageProcessor) DeleteProductImage(imagePath string) error {
	if imagePath == "" {
		return fmt.Errorf("empty image path")
	}

	filename := filepath.Base(imagePath)
	basename := filename
	if dotIndex := strings.LastIndex(filename, "."); dotIndex != -1 {
		basename = filename[:dotIndex]
	}

	originalPath := filepath.Join(p.basePath, strings.TrimPrefix(imagePath, "/media/"))
	if err := os.Remove(originalPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove original image: %w", err)
	}

	thumbsDir := filepath.Join(p.basePath, "thumbs")
	for _, width := range thumbnailWidths {
		thumbPath := filepath.Join(thumbsDir, fmt.Sprintf("%s_%dpx.webp", basename, width))
		if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove thumbnail %s: %w", thumbPath, err)
		}
	}
	return nil
}

// generateWebPThumbnails resizes the original to each configured width,
// preserving aspect ratio, and saves WebP variants.
func (p *ImageProcessor) generateWebPThumbnails(originalPath, basename, thumbsDir string) ([]string, error) {
	originalFile, err := os.Open(originalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open original file: %w", err)
	}
	defer originalFile.Close()

	img, err := imaging.Decode(originalFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumbnailPaths := make([]string, len(thumbnailWidths))
	for i, width := range thumbnailWidths {
		resized := imaging.Resize(img, width, 0, imaging.Lanczos)

		thumbFilename := fmt.Sprintf("%s_%dpx.webp", basename, width)
		thumbPath := filepath.Join(thumbsDir, thumbFilename)

		if err := webp.Save(thumbPath, resized, &webp.Options{Quality: 85}); err != nil {
			for j := range i {
				os.Remove(thumbnailPaths[j])
			}
			return nil, fmt.Errorf("failed to save WebP thumbnail %s: %w", thumbFilename, err)
		}
		thumbnailPaths[i] = thumbPath
	}
	return thumbnailPaths, nil
}

// extractExtension auto-detects file extension from MIME type
func extractExtension(data string) string {
	if strings.Contains(data, "data:image/png") {
		return "png"
	} else if strings.Contains(data, "data:image/jpeg") || strings.Contains(data, "data:image/jpg") {
		return "jpg"
	} else if strings.Contains(data, "data:image/webp") {
		return "webp"
	} else if strings.Contains(data, "data:image/gif") {
		return "gif"
	}
	return ""
}

// writeBinaryImage strips the data URL prefix, decodes and writes the bytes.
func writeBinaryImage(data, filename, targetDir string) (string, error) {
	binaryPattern := regexp.MustCompile(`^data:image/\w+;base64,`)
	if !binaryPattern.MatchString(data) {
		return "", fmt.Errorf("invalid binary image base64 format")
	}

	b64Data := binaryPattern.ReplaceAllString(data, "")
	decoded, err := base64.StdEncoding.DecodeString(b64Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	fullPath := filepath.Join(targetDir, filename)
	if err := os.WriteFile(fullPath, decoded, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return fullPath, nil
}
