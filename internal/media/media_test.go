package media

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestEncodeDecodeDataURI(t *testing.T) {
	uri := EncodeDataURI("image/png", []byte("ABC"))
	if uri != "data:image/png;base64,QUJD" {
		t.Fatalf("EncodeDataURI() = %q", uri)
	}

	mimeType, data, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("DecodeDataURI() error = %v", err)
	}
	if mimeType != "image/png" || string(data) != "ABC" {
		t.Errorf("DecodeDataURI() = %q, %q", mimeType, data)
	}
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare base64", "QUJD"},
		{"no comma", "data:image/png;base64"},
		{"not base64 encoded", "data:text/plain,hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeDataURI(tt.input); !errors.Is(err, ErrNotDataURI) {
				t.Errorf("DecodeDataURI(%q) error = %v, want ErrNotDataURI", tt.input, err)
			}
		})
	}

	if _, _, err := DecodeDataURI("data:image/png;base64,!!!"); err == nil {
		t.Error("expected decode error for invalid payload")
	}
}

func TestLoadImageFile(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "card.png")
	if err := os.WriteFile(pngPath, pngHeader, 0o600); err != nil {
		t.Fatal(err)
	}
	uri, err := LoadImageFile(pngPath)
	if err != nil {
		t.Fatalf("LoadImageFile() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("LoadImageFile() = %q", uri)
	}

	// unknown extension falls back to sniffing
	sniffPath := filepath.Join(dir, "card.bin")
	if err := os.WriteFile(sniffPath, pngHeader, 0o600); err != nil {
		t.Fatal(err)
	}
	if uri, err := LoadImageFile(sniffPath); err != nil || !strings.HasPrefix(uri, "data:image/png;") {
		t.Errorf("LoadImageFile(sniffed) = %q, %v", uri, err)
	}

	textPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textPath, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImageFile(textPath); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("LoadImageFile(text) error = %v", err)
	}

	if _, err := LoadImageFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadImageFile(dir); err == nil {
		t.Error("expected error for directory")
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
		"image/jpeg": ".jpg",
		"":           ".jpg",
	}
	for in, want := range tests {
		if got := ExtensionFor(in); got != want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cards")

	path, err := SaveImage(EncodeDataURI("image/png", pngHeader), dir)
	if err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}
	if !filepath.IsAbs(path) || filepath.Ext(path) != ".png" || !strings.HasPrefix(filepath.Base(path), "card_") {
		t.Errorf("SaveImage() path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("saved content mismatch")
	}

	second, err := SaveImage(EncodeDataURI("image/png", pngHeader), dir)
	if err != nil || second == path {
		t.Errorf("second SaveImage() = %q, %v; want a distinct file", second, err)
	}

	if _, err := SaveImage("QUJD", dir); !errors.Is(err, ErrNotDataURI) {
		t.Errorf("SaveImage(bare) error = %v", err)
	}
}
