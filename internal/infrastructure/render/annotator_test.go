//go:build !gocv
// +build !gocv

package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"uidiff-bot/internal/domain/entity"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func whiteCanvas(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return encodePNG(t, img)
}

func TestAnnotate_AddsLegendBand(t *testing.T) {
	a := NewImageAnnotator()

	out, err := a.Annotate(whiteCanvas(t, 800, 600), nil, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 600+legendHeight, img.Bounds().Dy())

	// фон ленты, а не исходного изображения
	c := color.NRGBAModel.Convert(img.At(400, 620)).(color.NRGBA)
	require.Equal(t, legendBackground.R, c.R)
	require.Equal(t, legendBackground.G, c.G)
	require.Equal(t, legendBackground.B, c.B)
}

func TestAnnotate_LegendShowsTotal(t *testing.T) {
	a := NewImageAnnotator()
	src := whiteCanvas(t, 300, 100)

	one, err := a.Annotate(src, nil, 1)
	require.NoError(t, err)
	two, err := a.Annotate(src, nil, 2)
	require.NoError(t, err)

	// счётчик в ленте доходит до пикселей: разный total — разный растр
	require.NotEqual(t, one, two)

	img, err := png.Decode(bytes.NewReader(one))
	require.NoError(t, err)

	// в ленте есть пиксели цвета текста
	var found bool
	for x := 12; x < 300 && !found; x++ {
		for y := 100; y < 100+legendHeight && !found; y++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			found = c.R == legendText.R && c.G == legendText.G && c.B == legendText.B
		}
	}
	require.True(t, found)
}

func TestAnnotate_DrawsTypedStroke(t *testing.T) {
	a := NewImageAnnotator()

	diffs := []entity.CanonicalDifference{{
		RawDifference: entity.RawDifference{Type: "text_change"},
		Index:         1,
		Area:          entity.Box{X1: 100, Y1: 100, X2: 300, Y2: 200},
		Renderable:    true,
	}}

	out, err := a.Annotate(whiteCanvas(t, 800, 600), diffs, 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// верхняя кромка рамки — цвет типа text_change
	c := color.NRGBAModel.Convert(img.At(200, 101)).(color.NRGBA)
	require.Equal(t, strokes["text_change"].R, c.R)
	require.Equal(t, strokes["text_change"].G, c.G)
	require.Equal(t, strokes["text_change"].B, c.B)

	// внутри рамки белый фон подкрашен заливкой
	in := color.NRGBAModel.Convert(img.At(200, 150)).(color.NRGBA)
	require.Less(t, int(in.G), 255)
}

func TestAnnotate_UnknownTypeFallsBackToRed(t *testing.T) {
	a := NewImageAnnotator()

	diffs := []entity.CanonicalDifference{{
		RawDifference: entity.RawDifference{Type: "font_swap"},
		Index:         1,
		Area:          entity.Box{X1: 10, Y1: 10, X2: 60, Y2: 60},
		Renderable:    true,
	}}

	out, err := a.Annotate(whiteCanvas(t, 200, 200), diffs, 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	c := color.NRGBAModel.Convert(img.At(30, 11)).(color.NRGBA)
	require.Equal(t, strokes["text_change"].R, c.R)
}

func TestAnnotate_SkipsNonRenderable(t *testing.T) {
	a := NewImageAnnotator()

	diffs := []entity.CanonicalDifference{{
		RawDifference: entity.RawDifference{Type: "layout_change"},
		Index:         1,
		Area:          entity.Box{X1: 50, Y1: 50, X2: 50, Y2: 50},
		Renderable:    false,
	}}

	out, err := a.Annotate(whiteCanvas(t, 200, 200), diffs, 1)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	// вырожденная область ничего не оставляет на растре
	c := color.NRGBAModel.Convert(img.At(50, 50)).(color.NRGBA)
	require.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, c)
}

func TestAnnotate_Deterministic(t *testing.T) {
	a := NewImageAnnotator()

	diffs := []entity.CanonicalDifference{{
		RawDifference: entity.RawDifference{Type: "element_added"},
		Index:         2,
		Area:          entity.Box{X1: 20, Y1: 30, X2: 120, Y2: 90},
		Renderable:    true,
	}}

	src := whiteCanvas(t, 300, 200)

	first, err := a.Annotate(src, diffs, 3)
	require.NoError(t, err)
	second, err := a.Annotate(src, diffs, 3)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestAnnotate_BadImage(t *testing.T) {
	a := NewImageAnnotator()

	_, err := a.Annotate([]byte("definitely not a png"), nil, 0)
	require.Error(t, err)

	var lErr *entity.ImageLoadError
	require.ErrorAs(t, err, &lErr)
}
