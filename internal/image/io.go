// Package image loads, saves and resizes the raster images fed to the
// mean-shift filter.
//
// Decoding auto-detects PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding
// supports PNG, JPEG, BMP and TIFF.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an output format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Encoding is an output file format.
type Encoding string

// Supported output encodings.
const (
	EncodingPNG  Encoding = "png"
	EncodingJPEG Encoding = "jpeg"
	EncodingBMP  Encoding = "bmp"
	EncodingTIFF Encoding = "tiff"
)

// DefaultJPEGQuality is used when a quality outside 1..100 is requested.
const DefaultJPEGQuality = 90

// ParseEncoding converts a format name or file extension (with or without
// the leading dot) to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return EncodingPNG, nil
	case "jpg", "jpeg":
		return EncodingJPEG, nil
	case "bmp":
		return EncodingBMP, nil
	case "tif", "tiff":
		return EncodingTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Ext returns the conventional file extension for e, including the dot.
func (e Encoding) Ext() string {
	switch e {
	case EncodingJPEG:
		return ".jpg"
	case EncodingTIFF:
		return ".tif"
	default:
		return "." + string(e)
	}
}

// Load decodes the image at path, auto-detecting its format.
// The returned string is the format name registered with the decoder.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadConfig reads only the dimensions and color model of the image at path.
func LoadConfig(path string) (image.Config, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("image: decode config: %w", err)
	}
	return cfg, format, nil
}

// Decode decodes an image from r, auto-detecting its format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return img, format, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Encode writes img to w in the given encoding. quality applies to JPEG
// only; values outside 1..100 select DefaultJPEGQuality.
func Encode(w io.Writer, img image.Image, enc Encoding, quality int) error {
	var err error
	switch enc {
	case EncodingPNG:
		err = png.Encode(w, img)
	case EncodingJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case EncodingBMP:
		err = bmp.Encode(w, img)
	case EncodingTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, enc)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", enc, err)
	}
	return nil
}

// Save writes img to path in the given encoding.
func Save(path string, img image.Image, enc Encoding, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, img, enc, quality); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
