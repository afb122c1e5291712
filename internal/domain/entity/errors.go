package entity

import "fmt"

// AccessError — исходное изображение недоступно для чтения.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot read source image %q: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ExtractionError — в тексте ответа нет ожидаемого структурного блока.
// Исходный текст сохраняется целиком: без него сбой контракта не разобрать.
type ExtractionError struct {
	Object   string
	Response string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no %q block found in analysis response", e.Object)
}

// MalformedPayloadError — блок найден, но не разбирается или содержит
// вырожденные данные.
type MalformedPayloadError struct {
	Object string
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %q payload: %s: %v", e.Object, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %q payload: %s", e.Object, e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// ImageLoadError — целевой растр не декодируется для отрисовки.
type ImageLoadError struct {
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("cannot decode target image: %v", e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// WriteError — не удалось создать каталог или записать файл с результатом.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write highlighted image %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
