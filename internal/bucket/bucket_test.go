package bucket

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNGB64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImageFromString(t *testing.T) {
	img, err := imageFromString(testPNGB64(t, 60, 40))
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	_, err = imageFromString("not an image payload")
	require.Error(t, err)

	_, err = imageFromString("data:image/gif;base64,AAAA")
	require.Error(t, err)
}

func TestResizeToWidth(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))

	resized := resizeToWidth(img, 40)
	assert.Equal(t, 40, resized.Bounds().Dx())
	assert.Equal(t, 20, resized.Bounds().Dy())

	// narrower than target stays untouched
	same := resizeToWidth(img, 200)
	assert.Equal(t, 100, same.Bounds().Dx())
}

func TestBlurHashFor(t *testing.T) {
	img, err := imageFromString(testPNGB64(t, 64, 48))
	require.NoError(t, err)

	hash, err := blurHashFor(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}
