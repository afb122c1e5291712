// Package capture — скриншоты страниц через безголовый Chrome.
package capture

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"uidiff-bot/internal/domain/entity"
	"uidiff-bot/internal/domain/port"
)

// ChromeCapturer снимает полностраничные скриншоты по URL.
type ChromeCapturer struct {
	execPath string
	timeout  time.Duration
}

// NewChromeCapturer создаёт захватчик. execPath может быть пустым — тогда
// бинарник браузера ищется стандартным для chromedp способом.
func NewChromeCapturer(execPath string) *ChromeCapturer {
	return &ChromeCapturer{execPath: execPath, timeout: 60 * time.Second}
}

var _ port.ScreenCapturer = (*ChromeCapturer)(nil)

// Capture открывает страницу и возвращает её полный скриншот (PNG).
func (c *ChromeCapturer) Capture(ctx context.Context, url string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// глушим лог chromedp
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, c.timeout)
	defer cancelTimeout()

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
		// качество 100 переключает формат снимка на PNG
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, &entity.AccessError{Path: url, Err: err}
	}
	return buf, nil
}
