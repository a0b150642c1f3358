package banana

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/ironsheep/banana-tools-mcp/internal/imaging"
)

// Multipart field names expected by the remote API.
const (
	FieldImages = "images"
	FieldKey    = "key"
	FieldPrompt = "prompt"
)

// encodeForm builds the multipart body: every image as a PNG file part under
// FieldImages, followed by the key and prompt fields.
func encodeForm(req EditRequest) (string, *bytes.Buffer, *Failure) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for i, img := range req.Images {
		data, err := imaging.EncodePNG(img)
		if err != nil {
			msg := fmt.Sprintf("Error: image%d could not be encoded: %v", i+1, err)
			if errors.Is(err, imaging.ErrUnsupportedChannels) {
				msg = fmt.Sprintf("Error: image%d format is not supported (RGB or RGBA is expected)", i+1)
			}
			return "", nil, &Failure{Kind: KindPayload, Message: msg, Err: err}
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename="image_%d.png"`, FieldImages, i))
		h.Set("Content-Type", "image/png")

		part, err := w.CreatePart(h)
		if err != nil {
			return "", nil, formFailure(err)
		}
		if _, err := part.Write(data); err != nil {
			return "", nil, formFailure(err)
		}
	}

	if err := w.WriteField(FieldKey, req.Key); err != nil {
		return "", nil, formFailure(err)
	}
	if err := w.WriteField(FieldPrompt, req.Prompt); err != nil {
		return "", nil, formFailure(err)
	}
	if err := w.Close(); err != nil {
		return "", nil, formFailure(err)
	}

	return w.FormDataContentType(), body, nil
}

func formFailure(err error) *Failure {
	return &Failure{
		Kind:    KindPayload,
		Message: fmt.Sprintf("Error: failed to build request body: %v", err),
		Err:     err,
	}
}
