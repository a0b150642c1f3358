package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// EncodedImage is a PNG rendition of a buffer, ready to embed in a JSON response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes the buffer as PNG bytes. RGBA buffers lose their alpha channel.
func EncodePNG(b *Buffer) ([]byte, error) {
	img, err := b.ToNRGBA()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBase64 encodes the buffer as a base64 PNG payload.
func EncodeBase64(b *Buffer) (*EncodedImage, error) {
	data, err := EncodePNG(b)
	if err != nil {
		return nil, err
	}
	return &EncodedImage{
		Width:       b.Width,
		Height:      b.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}

// DecodeImage decodes PNG or JPEG bytes into a normalized RGB buffer.
func DecodeImage(data []byte) (*Buffer, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img, false), nil
}

// StripDataURI removes a data-URI header such as "data:image/png;base64," by
// keeping only the text after the first comma. Payloads without a comma are
// returned unchanged.
func StripDataURI(payload string) string {
	if _, data, ok := strings.Cut(payload, ","); ok {
		return data
	}
	return payload
}

// PadBase64 appends '=' until the payload length is a multiple of 4.
// Some providers emit unpadded base64.
func PadBase64(payload string) string {
	if rem := len(payload) % 4; rem != 0 {
		return payload + strings.Repeat("=", 4-rem)
	}
	return payload
}

// DecodeBase64 strips an optional data-URI header, restores padding and
// decodes the payload bytes.
func DecodeBase64(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(PadBase64(StripDataURI(payload)))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, nil
}

// DecodePayload turns a base64 (optionally data-URI) image payload into a
// normalized RGB buffer.
func DecodePayload(payload string) (*Buffer, error) {
	data, err := DecodeBase64(payload)
	if err != nil {
		return nil, err
	}
	return DecodeImage(data)
}
