package optcode

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		format  Format
		payload string
		w, h    int
	}{
		{FormatQR, "ET-FIN-000111", 300, 300},
		{FormatQR, "1234567890123456", 300, 300},
		{FormatCode128, "1234 5678 9012 3456", 600, 120},
		{FormatCode128, "ET000111", 600, 120},
	}
	for _, tt := range tests {
		img, err := Encode(tt.payload, tt.format, tt.w, tt.h)
		if err != nil {
			t.Fatalf("Encode(%q, %s) error: %v", tt.payload, tt.format, err)
		}
		decoded, err := Decode(img, DecodeOptions{Formats: []Format{tt.format}})
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", tt.format, err)
		}
		if decoded == nil {
			t.Fatalf("Decode(%s) found no code", tt.format)
		}
		if decoded.Payload != tt.payload {
			t.Errorf("round trip %s: got %q, want %q", tt.format, decoded.Payload, tt.payload)
		}
		if decoded.Format != tt.format {
			t.Errorf("round trip format: got %s, want %s", decoded.Format, tt.format)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := Encode("ET-FIN-000111", FormatQR, 240, 240)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode("ET-FIN-000111", FormatQR, 240, 240)
	if err != nil {
		t.Fatal(err)
	}

	var bufA, bufB bytes.Buffer
	if err := png.Encode(&bufA, a); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&bufB, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Error("two encodes of the same payload differ")
	}
}

func TestEncode_InvalidInput(t *testing.T) {
	if _, err := Encode("", FormatQR, 100, 100); err == nil {
		t.Error("expected error for empty payload")
	}
	if _, err := Encode("abc", Format("pdf417"), 100, 100); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := Encode("abc", FormatQR, 0, 0); err == nil {
		t.Error("expected error for zero dimensions")
	}
	// EAN-13 only carries 12 or 13 digits.
	if _, err := Encode("not-a-number", FormatEAN13, 400, 100); err == nil {
		t.Error("expected error for invalid EAN-13 payload")
	}
}

func TestDecode_WindowedScan(t *testing.T) {
	// A QR symbol placed in the top 40% of a 1000x1400 page must
	// decode within the 50% scan window.
	qr, err := Encode("ET-FIN-000111", FormatQR, 300, 300)
	if err != nil {
		t.Fatal(err)
	}

	page := image.NewNRGBA(image.Rect(0, 0, 1000, 1400))
	draw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(page, image.Rect(350, 150, 650, 450), qr, image.Point{}, draw.Src)

	decoded, err := Decode(page, DecodeOptions{Formats: []Format{FormatQR}})
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if decoded == nil {
		t.Fatal("Decode found no code")
	}
	if decoded.Payload != "ET-FIN-000111" {
		t.Errorf("payload = %q, want %q", decoded.Payload, "ET-FIN-000111")
	}
	if decoded.Format != FormatQR {
		t.Errorf("format = %s, want %s", decoded.Format, FormatQR)
	}
	if decoded.Window > 0.50 {
		t.Errorf("decoded in window %.2f, want <= 0.50", decoded.Window)
	}
}

func TestDecode_NoCodeIsNotAnError(t *testing.T) {
	blank := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	draw.Draw(blank, blank.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	decoded, err := Decode(blank, DefaultDecodeOptions())
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if decoded != nil {
		t.Errorf("expected nil result for blank image, got %+v", decoded)
	}
}

func TestDecode_NilImage(t *testing.T) {
	if _, err := Decode(nil, DefaultDecodeOptions()); err == nil {
		t.Error("expected error for nil image")
	}
}
