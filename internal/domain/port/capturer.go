package port

import "context"

// ScreenCapturer интерфейс снятия скриншота страницы по URL
type ScreenCapturer interface {
	// Capture открывает страницу и возвращает её полный скриншот (PNG)
	Capture(ctx context.Context, url string) ([]byte, error)
}
