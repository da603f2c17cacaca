package sdruntime

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// pngMagic is the 8-byte PNG file signature
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Image validation errors
var (
	ErrImageEmpty       = errors.New("sdruntime: image data is empty")
	ErrImageNotPNG      = errors.New("sdruntime: image data is not a valid PNG")
	ErrImageTooSmall    = errors.New("sdruntime: image data too small to be valid")
	ErrImageDecodeFail  = errors.New("sdruntime: failed to decode image")
	ErrImageInvalidSize = errors.New("sdruntime: invalid image dimensions")
)

// minPNGSize is signature + IHDR + IEND.
const minPNGSize = 8 + 25 + 12

// IsPNG checks if the given data starts with PNG magic bytes.
func IsPNG(data []byte) bool {
	return len(data) >= len(pngMagic) && bytes.Equal(data[:len(pngMagic)], pngMagic)
}

// ValidateImageData checks that data is a complete, decodable PNG.
// Every model output passes through here before it reaches the disk.
func ValidateImageData(data []byte) error {
	if len(data) == 0 {
		return ErrImageEmpty
	}
	if len(data) < minPNGSize {
		return ErrImageTooSmall
	}
	if !IsPNG(data) {
		return ErrImageNotPNG
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrImageDecodeFail, err)
	}
	return nil
}

// EncodeToPNG encodes raw RGBA pixels (4 bytes per pixel) to PNG.
func EncodeToPNG(pixels []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d", ErrImageInvalidSize, width, height)
	}

	expectedLen := width * height * 4
	if len(pixels) != expectedLen {
		return nil, fmt.Errorf("%w: expected %d bytes for %dx%d RGBA, got %d",
			ErrImageInvalidSize, expectedLen, width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return encodeImage(img)
}

func encodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecodeFail, err)
	}
	return buf.Bytes(), nil
}
