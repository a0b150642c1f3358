package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrUnsupportedChannels is returned when a raster has a channel count other than 3 (RGB) or 4 (RGBA).
var ErrUnsupportedChannels = errors.New("unsupported channel layout (RGB or RGBA is expected)")

// PlaceholderSize is the edge length of the blank image returned in place of a failed result.
const PlaceholderSize = 512

// Buffer is an in-memory RGB or RGBA raster with channel values normalized to [0,1].
//
// Pixels are stored row-major, interleaved by channel:
//
//	Pix[(y*Width+x)*Channels+c]
//
// A Buffer is not safe for concurrent mutation. Buffers produced by this package
// are never modified after construction, so they may be shared freely.
type Buffer struct {
	Height   int
	Width    int
	Channels int
	Pix      []float32
}

// Batch is an ordered group of buffers, the unit carried by a single image input.
type Batch []*Buffer

// NewBuffer allocates a zeroed (black, fully transparent for RGBA) buffer.
//
// Returns ErrUnsupportedChannels when channels is not 3 or 4, and an error for
// non-positive dimensions.
func NewBuffer(height, width, channels int) (*Buffer, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: got %d channels", ErrUnsupportedChannels, channels)
	}
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid buffer dimensions %dx%d", width, height)
	}
	return &Buffer{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]float32, height*width*channels),
	}, nil
}

// Placeholder returns the blank 512x512 RGB image used when an operation fails.
func Placeholder() *Buffer {
	b, _ := NewBuffer(PlaceholderSize, PlaceholderSize, 3)
	return b
}

// At returns the normalized value of channel c at (x, y).
func (b *Buffer) At(x, y, c int) float32 {
	return b.Pix[(y*b.Width+x)*b.Channels+c]
}

// Set stores the normalized value of channel c at (x, y).
func (b *Buffer) Set(x, y, c int, v float32) {
	b.Pix[(y*b.Width+x)*b.Channels+c] = v
}

// Validate reports whether the buffer's shape is consistent with its pixel data.
func (b *Buffer) Validate() error {
	if b.Channels != 3 && b.Channels != 4 {
		return fmt.Errorf("%w: got %d channels", ErrUnsupportedChannels, b.Channels)
	}
	if b.Height <= 0 || b.Width <= 0 {
		return fmt.Errorf("invalid buffer dimensions %dx%d", b.Width, b.Height)
	}
	if len(b.Pix) != b.Height*b.Width*b.Channels {
		return fmt.Errorf("pixel data length %d does not match %dx%dx%d",
			len(b.Pix), b.Height, b.Width, b.Channels)
	}
	return nil
}

// FromImage converts a decoded image into a normalized buffer.
//
// When keepAlpha is true and the source carries an alpha channel, the buffer has
// 4 channels; otherwise alpha is discarded and the buffer is RGB. Color values are
// read unpremultiplied, so translucent pixels keep their straight RGB values.
func FromImage(img image.Image, keepAlpha bool) *Buffer {
	bounds := img.Bounds()
	channels := 3
	if keepAlpha && hasAlpha(img) {
		channels = 4
	}

	b := &Buffer{
		Height:   bounds.Dy(),
		Width:    bounds.Dx(),
		Channels: channels,
		Pix:      make([]float32, bounds.Dy()*bounds.Dx()*channels),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			b.Pix[i] = float32(c.R) / 255
			b.Pix[i+1] = float32(c.G) / 255
			b.Pix[i+2] = float32(c.B) / 255
			if channels == 4 {
				b.Pix[i+3] = float32(c.A) / 255
			}
			i += channels
		}
	}
	return b
}

// ToNRGBA converts the buffer to an opaque 8-bit image. The alpha channel of an
// RGBA buffer is dropped.
func (b *Buffer) ToNRGBA() (*image.NRGBA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	src := 0
	for dst := 0; dst < len(img.Pix); dst += 4 {
		img.Pix[dst] = quantize(b.Pix[src])
		img.Pix[dst+1] = quantize(b.Pix[src+1])
		img.Pix[dst+2] = quantize(b.Pix[src+2])
		img.Pix[dst+3] = 0xff
		src += b.Channels
	}
	return img, nil
}

// quantize maps a normalized value to 8 bits, clamping out-of-range input.
func quantize(v float32) uint8 {
	if v <= 0 || math.IsNaN(float64(v)) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// hasAlpha reports whether the image type carries an alpha channel.
func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}
