//go:build !gocv
// +build !gocv

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"uidiff-bot/internal/domain/entity"
)

// ImageAnnotator — чисто-Go отрисовщик подсветки без OpenCV.
// Результат детерминирован: одинаковый вход даёт байт-в-байт одинаковый PNG.
type ImageAnnotator struct {
	strokeWidth int
}

// NewImageAnnotator создаёт отрисовщик подсветки отличий.
func NewImageAnnotator() *ImageAnnotator {
	return &ImageAnnotator{strokeWidth: 3}
}

// Annotate копирует исходный растр, дорисовывает ленту с итогом, рамки,
// заливку и номера отличий. Исходное изображение не меняется.
func (a *ImageAnnotator) Annotate(imageData []byte, diffs []entity.CanonicalDifference, total int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, &entity.ImageLoadError{Err: err}
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := image.NewNRGBA(image.Rect(0, 0, w, h+legendHeight))
	draw.Draw(out, image.Rect(0, 0, w, h), src, bounds.Min, draw.Src)

	// Лента с итогом — до рамок, чтобы рамки у нижнего края её не задевали.
	draw.Draw(out, image.Rect(0, h, w, h+legendHeight), image.NewUniform(legendBackground), image.Point{}, draw.Src)
	drawString(out, fmt.Sprintf("%d UI differences detected", total), 12, h+25, legendText)

	for _, d := range diffs {
		if !d.Renderable {
			continue
		}

		rect := image.Rect(
			int(math.Round(d.Area.X1)),
			int(math.Round(d.Area.Y1)),
			int(math.Round(d.Area.X2)),
			int(math.Round(d.Area.Y2)),
		)

		stroke, fill := paletteFor(d.Type)
		draw.Draw(out, rect, image.NewUniform(fill), image.Point{}, draw.Over)
		a.drawBorder(out, rect, stroke)
		drawLabel(out, fmt.Sprintf("%d", d.Index), rect.Min.X+6, rect.Min.Y+16)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawBorder рисует рамку толщиной strokeWidth внутрь от границ rect.
func (a *ImageAnnotator) drawBorder(dst *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	t := a.strokeWidth
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Over)
}

// drawLabel пишет жирный номер со светлой заливкой и тёмной обводкой,
// чтобы он читался на произвольном фоне.
func drawLabel(dst *image.NRGBA, text string, x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(dst, text, x+dx, y+dy, labelDark)
			drawString(dst, text, x+1+dx, y+dy, labelDark)
		}
	}
	drawString(dst, text, x, y, labelLight)
	drawString(dst, text, x+1, y, labelLight) // второй проход со сдвигом — «жирное» начертание
}

func drawString(dst *image.NRGBA, text string, x, y int, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
