package image

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Resize errors.
var (
	// ErrInvalidSize is returned for malformed or non-positive target sizes.
	ErrInvalidSize = errors.New("image: invalid size")

	// ErrUnknownInterpolation is returned for an unrecognized kernel name.
	ErrUnknownInterpolation = errors.New("image: unknown interpolation")
)

// Interpolation selects the resampling kernel used by Resize.
type Interpolation uint8

const (
	// NearestNeighbor is fastest and keeps hard edges.
	NearestNeighbor Interpolation = iota
	// BiLinear matches the usual linear resize of imaging toolkits.
	BiLinear
	// CatmullRom is slowest and sharpest.
	CatmullRom
)

// ParseInterpolation converts a kernel name to an Interpolation.
// Accepted names are "nearest", "bilinear" and "catmullrom".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "nearest", "nearestneighbor":
		return NearestNeighbor, nil
	case "bilinear", "linear":
		return BiLinear, nil
	case "catmullrom", "cubic":
		return CatmullRom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterpolation, s)
	}
}

// String returns the kernel name accepted by ParseInterpolation.
func (i Interpolation) String() string {
	switch i {
	case NearestNeighbor:
		return "nearest"
	case BiLinear:
		return "bilinear"
	case CatmullRom:
		return "catmullrom"
	default:
		return "unknown"
	}
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case NearestNeighbor:
		return draw.NearestNeighbor
	case CatmullRom:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

// Resize scales src to exactly width x height pixels.
func Resize(src image.Image, width, height int, interp Interpolation) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	interp.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// ToNRGBA returns img as an *image.NRGBA anchored at the origin, copying
// only when necessary.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// ParseSize parses a "WIDTHxHEIGHT" string such as "256x256".
// "0x0" and the empty string return zero dimensions, meaning no resize.
func ParseSize(s string) (width, height int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	width, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	height, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	if width == 0 && height == 0 {
		return 0, 0, nil
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return width, height, nil
}
