package render

import (
	"bytes"
	"image"

	// Registered decoders for the formats remote images arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/carmex/tierMCP/pkg/errors"
)

// DecodeImage decodes fetched bytes into an image. Failures map to
// DECODE_FAILED, which the renderer treats like any other per-item
// resource failure.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode image")
	}
	return img, nil
}
