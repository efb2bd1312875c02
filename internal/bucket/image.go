package bucket

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/bbrks/go-blurhash"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/image/draw"
)

const (
	contentTypeJPEG = "data:image/jpeg"
	contentTypePNG  = "data:image/png"
	contentTypeWEBP = "data:image/webp"
)

type b64Image struct {
	contentType string
	content     []byte
}

// getB64ImageFromString splits a raw base64 image string of the form
// "data:[<mediatype>];base64,[<base64-data>]".
func getB64ImageFromString(rawB64Image string) (*b64Image, error) {
	const base64Prefix = ";base64,"
	parts := strings.Split(rawB64Image, base64Prefix)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid base64 image format: expected 'data:[mediatype];base64,[data]'")
	}
	return &b64Image{
		contentType: parts[0],
		content:     []byte(parts[1]),
	}, nil
}

func (b64Img *b64Image) decode() (image.Image, error) {
	reader := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b64Img.content))
	switch b64Img.contentType {
	case contentTypeJPEG:
		return jpeg.Decode(reader)
	case contentTypePNG:
		return png.Decode(reader)
	case contentTypeWEBP:
		return webp.Decode(reader, nil)
	default:
		return nil, fmt.Errorf("unsupported image type [%s]", b64Img.contentType)
	}
}

func imageFromString(rawB64Image string) (image.Image, error) {
	b64Img, err := getB64ImageFromString(rawB64Image)
	if err != nil {
		return nil, err
	}
	return b64Img.decode()
}

func encodeWEBP(w *bytes.Buffer, img image.Image, quality float32) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return fmt.Errorf("can't create webp encoder options: %w", err)
	}
	return webp.Encode(w, img, opts)
}

// resizeToWidth scales the image down to the given width keeping the aspect
// ratio. Images narrower than the target are returned as is.
func resizeToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= width {
		return img
	}
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func blurHashFor(img image.Image) (string, error) {
	// blurhash is computed on a small copy, the algorithm is quadratic in
	// the pixel count.
	small := resizeToWidth(img, 32)
	return blurhash.Encode(4, 3, small)
}
