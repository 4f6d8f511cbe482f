package cardgen

import (
	"bytes"
	"image"
	"testing"
)

func TestPrintSheet(t *testing.T) {
	side := image.NewNRGBA(image.Rect(0, 0, 1012, 638))
	front, err := Export(side, "png", 0)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Export(side, "jpeg", 80)
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := PrintSheet(front, back)
	if err != nil {
		t.Fatalf("PrintSheet error: %v", err)
	}
	if !bytes.HasPrefix(sheet, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestPrintSheet_RejectsGarbage(t *testing.T) {
	if _, err := PrintSheet([]byte("not an image"), []byte("not an image")); err == nil {
		t.Error("expected error for undecodable image bytes")
	}
}

func TestDetectImageType(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	pngBytes, _ := Export(img, "png", 0)
	jpgBytes, _ := Export(img, "jpeg", 90)

	if got, err := detectImageType(pngBytes); err != nil || got != "PNG" {
		t.Errorf("detectImageType(png) = %q, %v", got, err)
	}
	if got, err := detectImageType(jpgBytes); err != nil || got != "JPEG" {
		t.Errorf("detectImageType(jpeg) = %q, %v", got, err)
	}
	if _, err := detectImageType([]byte("junk")); err == nil {
		t.Error("expected error for junk bytes")
	}
}
