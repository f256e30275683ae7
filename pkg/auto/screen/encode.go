package screen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
)

// ImageToBase64 encodes an image as a data URI. format is "png" or
// "jpeg" (default "jpeg", smaller payloads); quality applies to JPEG
// only, 1-100 with a default of 80.
func ImageToBase64(img image.Image, format string, quality int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	if format == "" {
		format = "jpeg"
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	var buf bytes.Buffer
	var mimeType string

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("encode png: %w", err)
		}
		mimeType = "image/png"
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", fmt.Errorf("encode jpeg: %w", err)
		}
		mimeType = "image/jpeg"
	default:
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType,
		base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// SavePNG writes an image to path as PNG.
func SavePNG(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
