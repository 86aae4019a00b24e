package watermark

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidPNG кодирует одноцветное изображение заданного размера
func solidPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestApply_ProducesValidJPEG(t *testing.T) {
	src := solidPNG(t, 400, 400, color.RGBA{R: 20, G: 20, B: 40, A: 255})

	out, err := Apply(src, "Bentoshop Idol")
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestApply_PreservesDimensions(t *testing.T) {
	src := solidPNG(t, 317, 211, color.RGBA{R: 10, G: 60, B: 10, A: 255})

	out, err := Apply(src, "Bentoshop Idol")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 317, img.Bounds().Dx())
	assert.Equal(t, 211, img.Bounds().Dy())
}

func TestApply_CornersAreMarked(t *testing.T) {
	// Темный фон: белый полупрозрачный текст в углах обязан осветлить пиксели
	src := solidPNG(t, 400, 400, color.RGBA{R: 10, G: 10, B: 10, A: 255})

	out, err := Apply(src, "WWWWWW")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	brightened := func(x0, y0, x1, y1 int) bool {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				// Заметно светлее фона с учетом JPEG-артефактов
				if r>>8 > 60 && g>>8 > 60 && b>>8 > 60 {
					return true
				}
			}
		}
		return false
	}

	assert.True(t, brightened(0, 20, 120, 60), "top-left corner should carry text")
	assert.True(t, brightened(280, 20, 400, 60), "top-right corner should carry text")
	assert.True(t, brightened(0, 360, 120, 395), "bottom-left corner should carry text")
	assert.True(t, brightened(280, 360, 400, 395), "bottom-right corner should carry text")
}

func TestApply_CenterIsMarked(t *testing.T) {
	src := solidPNG(t, 400, 400, color.RGBA{R: 10, G: 10, B: 10, A: 255})

	out, err := Apply(src, "WWWWWW")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	var marked bool
	for y := 150; y < 250 && !marked; y++ {
		for x := 150; x < 250; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r>>8 > 60 {
				marked = true
				break
			}
		}
	}
	assert.True(t, marked, "center region should carry text")
}

func TestApply_RejectsGarbage(t *testing.T) {
	_, err := Apply([]byte("definitely not an image"), "Bentoshop Idol")
	assert.Error(t, err)
}

func TestApply_DecodesJPEGInput(t *testing.T) {
	// Вход уже в JPEG: прогоняем PNG через Apply дважды
	src := solidPNG(t, 100, 100, color.RGBA{R: 30, G: 30, B: 30, A: 255})

	first, err := Apply(src, "Bentoshop Idol")
	require.NoError(t, err)

	second, err := Apply(first, "Bentoshop Idol")
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(second))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, img.Bounds().Dx())
}
