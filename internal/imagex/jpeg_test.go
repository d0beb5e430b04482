package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompress_PNGToJPEG(t *testing.T) {
	out, err := Compress(testPNG(t), 10)
	require.NoError(t, err)

	img, format, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestCompress_LowerQualityIsSmaller(t *testing.T) {
	src := testPNG(t)

	low, err := Compress(src, 5)
	require.NoError(t, err)
	high, err := Compress(src, 95)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestCompress_Errors(t *testing.T) {
	_, err := Compress(nil, 10)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = Compress([]byte("not an image"), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}

func TestClampQuality(t *testing.T) {
	assert.Equal(t, 1, clampQuality(-5))
	assert.Equal(t, 1, clampQuality(0))
	assert.Equal(t, 10, clampQuality(10))
	assert.Equal(t, 100, clampQuality(250))
}
