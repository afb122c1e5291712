package port

import "uidiff-bot/internal/domain/entity"

// Annotator интерфейс отрисовщика подсветки отличий
type Annotator interface {
	// Annotate рисует рамки, заливку, номера и ленту с итогом поверх копии
	// изображения и возвращает PNG-байты. total — полное число отличий,
	// включая те, для которых геометрии нет.
	Annotate(imageData []byte, diffs []entity.CanonicalDifference, total int) ([]byte, error)
}
