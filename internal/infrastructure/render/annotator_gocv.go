//go:build gocv
// +build gocv

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"uidiff-bot/internal/domain/entity"
)

// ImageAnnotator — отрисовщик подсветки на OpenCV (сборка с тегом gocv).
// Визуальный контракт тот же, что у чисто-Go варианта.
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
	src, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil || src.Empty() {
		if err == nil {
			err = errors.New("empty image")
		}
		return nil, &entity.ImageLoadError{Err: err}
	}
	defer src.Close()

	w, h := src.Cols(), src.Rows()

	out := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(245, 245, 245, 0), h+legendHeight, w, gocv.MatTypeCV8UC3)
	defer out.Close()

	top := out.Region(image.Rect(0, 0, w, h))
	src.CopyTo(&top)
	top.Close()

	gocv.PutText(&out, fmt.Sprintf("%d UI differences detected", total),
		image.Pt(12, h+26), gocv.FontHersheySimplex, 0.55, toRGBA(legendText), 1)

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

		stroke, _ := paletteFor(d.Type)

		// Полупрозрачная заливка: прямоугольник на копии и смешивание с кадром.
		overlay := out.Clone()
		gocv.Rectangle(&overlay, rect, toRGBA(stroke), -1)
		gocv.AddWeighted(overlay, float64(fillAlpha)/255, out, 1-float64(fillAlpha)/255, 0, &out)
		overlay.Close()

		gocv.Rectangle(&out, rect, toRGBA(stroke), a.strokeWidth)

		label := fmt.Sprintf("%d", d.Index)
		org := image.Pt(rect.Min.X+6, rect.Min.Y+18)
		gocv.PutText(&out, label, org, gocv.FontHersheySimplex, 0.6, toRGBA(labelDark), 4)
		gocv.PutText(&out, label, org, gocv.FontHersheySimplex, 0.6, toRGBA(labelLight), 2)
	}

	buf, err := gocv.IMEncode(gocv.PNGFileExt, out)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
