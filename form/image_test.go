package form

import (
	"errors"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestValidateImageAcceptsPNG(t *testing.T) {
	ct, err := ValidateImage(pngHeader, ImageRules{MaxBytes: 1024})
	if err != nil {
		t.Fatalf("ValidateImage: %v", err)
	}
	if ct != "image/png" {
		t.Fatalf("expected image/png, got %s", ct)
	}
}

func TestValidateImageRejectsNonImages(t *testing.T) {
	_, err := ValidateImage([]byte("%PDF-1.4\n..."), ImageRules{})
	if !errors.Is(err, ErrImageType) {
		t.Fatalf("expected ErrImageType, got %v", err)
	}
}

func TestValidateImageRejectsOversized(t *testing.T) {
	_, err := ValidateImage(pngHeader, ImageRules{MaxBytes: 8})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}
