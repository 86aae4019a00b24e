// Package watermark наносит полупрозрачные текстовые водяные знаки на
// изображение. Чистая трансформация: байты на входе, байты на выходе,
// никаких побочных эффектов.
package watermark

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"
)

const (
	jpegQuality = 92

	centerFontSize = 48
	tileFontSize   = 32
	cornerFontSize = 24

	// Шаг диагональной плитки; область покрытия выходит за холст на его
	// ширину/высоту с каждой стороны, чтобы после поворота не оставалось
	// пустых углов
	tileSpacing = 200.0

	cornerInsetX = 20.0
	cornerInsetY = 40.0
)

var (
	fontOnce sync.Once
	fontErr  error
	boldFont *opentype.Font
)

func newFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", fontErr)
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// Apply декодирует изображение (JPEG/PNG/GIF/WebP), накладывает три слоя
// текста - крупный центральный под -45°, диагональную плитку и четыре
// угловые подписи - и кодирует результат обратно в JPEG.
// При ошибке декодирования возвращает ошибку; решение использовать
// оригинал без водяного знака остается за вызывающим.
func Apply(data []byte, text string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dc := gg.NewContextForImage(img)
	w := float64(dc.Width())
	h := float64(dc.Height())

	// Центральный знак
	face, err := newFace(centerFontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 0.30)
	dc.Push()
	dc.RotateAbout(gg.Radians(-45), w/2, h/2)
	dc.DrawStringAnchored(text, w/2, h/2, 0.5, 0.5)
	dc.Pop()

	// Диагональная плитка
	face, err = newFace(tileFontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 0.25)
	for y := -h; y < h*2; y += tileSpacing {
		for x := -w; x < w*2; x += tileSpacing * 2 {
			dc.Push()
			dc.RotateAbout(gg.Radians(-45), x, y)
			dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
			dc.Pop()
		}
	}

	// Угловые подписи, прижатые к краям
	face, err = newFace(cornerFontSize)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 0.35)
	dc.DrawStringAnchored(text, cornerInsetX, cornerInsetY, 0, 0.5)
	dc.DrawStringAnchored(text, w-cornerInsetX, cornerInsetY, 1, 0.5)
	dc.DrawStringAnchored(text, cornerInsetX, h-cornerInsetX, 0, 0.5)
	dc.DrawStringAnchored(text, w-cornerInsetX, h-cornerInsetX, 1, 0.5)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode watermarked image: %w", err)
	}
	return buf.Bytes(), nil
}
