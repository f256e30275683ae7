package screen

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 8, 4))
}

func TestImageToBase64(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantPrefix string
	}{
		{"png", "png", "data:image/png;base64,"},
		{"jpeg", "jpeg", "data:image/jpeg;base64,"},
		{"jpg alias", "jpg", "data:image/jpeg;base64,"},
		{"default is jpeg", "", "data:image/jpeg;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImageToBase64(testImage(), tt.format, 0)
			if err != nil {
				t.Fatalf("ImageToBase64: %v", err)
			}
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("prefix = %q, want %q", got[:min(len(got), 40)], tt.wantPrefix)
			}
			if len(got) == len(tt.wantPrefix) {
				t.Error("payload is empty")
			}
		})
	}
}

func TestImageToBase64Errors(t *testing.T) {
	if _, err := ImageToBase64(nil, "png", 80); err == nil {
		t.Error("nil image should fail")
	}
	if _, err := ImageToBase64(testImage(), "bmp", 80); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := SavePNG(testImage(), path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %v", b)
	}

	if err := SavePNG(nil, path); err == nil {
		t.Error("nil image should fail")
	}
}
