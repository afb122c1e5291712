package entity

// Box — прямоугольник (x1,y1)-(x2,y2) в координатах ответа сервиса.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width возвращает ширину прямоугольника.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height возвращает высоту прямоугольника.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// RawDifference — одно непроверенное отличие из ответа сервиса.
// Поле type — открытая строка: словарь сервиса не зафиксирован контрактом.
type RawDifference struct {
	Type          string `json:"type"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Coordinates   *Box   `json:"coordinates,omitempty"`
	HighlightArea *Box   `json:"highlight_area,omitempty"`
	Before        string `json:"before,omitempty"`
	After         string `json:"after,omitempty"`
}

// CanonicalDifference — отличие после масштабирования и ограничения рамкой.
// Area — highlight_area в пикселях целевого изображения, x1≤x2 и y1≤y2.
type CanonicalDifference struct {
	RawDifference

	Index      int  // номер в исходном списке (с единицы), он же подпись на картинке
	Area       Box  // геометрия для отрисовки
	Renderable bool // false для вырожденных боксов с нулевой или отрицательной площадью
}

// BuildCanonical нормализует список отличий: масштабирует highlight_area,
// ограничивает рамкой изображения и сохраняет исходный порядок.
// Записи без highlight_area пропускаются — рисовать для них нечего,
// но номер в списке они занимают, чтобы подписи не сдвигались.
func BuildCanonical(raw []RawDifference, sf ScaleFactors, width, height float64) []CanonicalDifference {
	out := make([]CanonicalDifference, 0, len(raw))
	for i, r := range raw {
		if r.HighlightArea == nil {
			continue
		}

		area := Box{
			X1: clamp(r.HighlightArea.X1*sf.X, 0, width),
			Y1: clamp(r.HighlightArea.Y1*sf.Y, 0, height),
			X2: clamp(r.HighlightArea.X2*sf.X, 0, width),
			Y2: clamp(r.HighlightArea.Y2*sf.Y, 0, height),
		}

		out = append(out, CanonicalDifference{
			RawDifference: r,
			Index:         i + 1,
			Area:          area,
			Renderable:    area.Width() > 0 && area.Height() > 0,
		})
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
