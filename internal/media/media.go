// Package media converts images between files and data URIs.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxImageSize = 20 * 1024 * 1024 // 20MB
)

// ErrNotDataURI is returned when a string is not a base64 data URI
var ErrNotDataURI = errors.New("not a base64 data URI")

// SupportedImageTypes returns the MIME types accepted for sending
func SupportedImageTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}
}

// IsSupportedType reports whether mimeType can be sent as an image
func IsSupportedType(mimeType string) bool {
	for _, supported := range SupportedImageTypes() {
		if strings.HasPrefix(mimeType, supported) {
			return true
		}
	}
	return false
}

// EncodeDataURI returns data as data:<mime>;base64,<payload>
func EncodeDataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI splits a base64 data URI into its MIME type and bytes
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return mimeType, data, nil
}

// LoadImageFile reads an image from disk and returns it as a data URI
func LoadImageFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxImageSize {
		return "", fmt.Errorf("file size exceeds maximum %d bytes", MaxImageSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	mimeType := DetectType(path, data)
	if !IsSupportedType(mimeType) {
		return "", fmt.Errorf("unsupported image type: %s", mimeType)
	}

	return EncodeDataURI(mimeType, data), nil
}

// DetectType returns the MIME type from the file extension, sniffing the
// content when the extension is unknown.
func DetectType(path string, data []byte) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if IsSupportedType(mimeType) {
		return mimeType
	}
	sniffed := http.DetectContentType(data)
	if sniffed != "application/octet-stream" {
		return sniffed
	}
	if mimeType == "" {
		return sniffed
	}
	return mimeType
}

// ExtensionFor returns the file extension for an image MIME type
func ExtensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "png"):
		return ".png"
	case strings.Contains(mimeType, "gif"):
		return ".gif"
	case strings.Contains(mimeType, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}

// SaveImage writes a data URI image into dir and returns the absolute path
func SaveImage(dataURI, dir string) (string, error) {
	mimeType, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := fmt.Sprintf("card_%s_%s%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		ExtensionFor(mimeType),
	)
	destPath := filepath.Join(dir, filename)

	if err := os.WriteFile(destPath, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	absPath, err := filepath.Abs(destPath)
	if err != nil {
		return destPath, nil
	}
	return absPath, nil
}
