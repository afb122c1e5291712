package port

import "context"

// VisionAnalyzer интерфейс внешнего мультимодального сервиса анализа
type VisionAnalyzer interface {
	// CompareImages отправляет два изображения и возвращает сырой текст анализа
	CompareImages(ctx context.Context, baseImage, currentImage []byte) (string, error)
}
