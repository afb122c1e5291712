package render

import "image/color"

// legendHeight — высота ленты с итогом под изображением, пиксели.
const legendHeight = 40

// fillAlpha — прозрачность заливки внутри рамки отличия.
const fillAlpha = 45

var (
	legendBackground = color.NRGBA{R: 245, G: 245, B: 245, A: 235}
	legendText       = color.NRGBA{R: 33, G: 33, B: 33, A: 255}
	labelDark        = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	labelLight       = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
)

// strokes — цвет рамки по типу отличия. Словарь типов открыт: незнакомый
// тип получает цвет text_change, а не отказ.
var strokes = map[string]color.NRGBA{
	"text_change":     {R: 220, G: 38, B: 38, A: 255},  // красный
	"layout_change":   {R: 37, G: 99, B: 235, A: 255},  // синий
	"element_added":   {R: 22, G: 163, B: 74, A: 255},  // зелёный
	"element_removed": {R: 234, G: 120, B: 20, A: 255}, // оранжевый
	"style_change":    {R: 147, G: 51, B: 234, A: 255}, // фиолетовый
}

// paletteFor возвращает цвет рамки и полупрозрачной заливки для типа отличия.
func paletteFor(diffType string) (stroke, fill color.NRGBA) {
	s, ok := strokes[diffType]
	if !ok {
		s = strokes["text_change"]
	}
	return s, color.NRGBA{R: s.R, G: s.G, B: s.B, A: fillAlpha}
}
