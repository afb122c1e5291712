package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uidiff-bot/internal/domain/entity"
	"uidiff-bot/internal/domain/port"
)

// FileOutputWriter пишет изображения с подсветкой в каталог на диске.
type FileOutputWriter struct {
	dir string
}

// NewFileOutputWriter создаёт писатель для каталога dir.
// Каталог создаётся лениво при первой записи.
func NewFileOutputWriter(dir string) *FileOutputWriter {
	return &FileOutputWriter{dir: dir}
}

var _ port.OutputWriter = (*FileOutputWriter)(nil)

// Save пишет data в новый файл diff_<base>_<timestamp>.png и возвращает
// его абсолютный путь. Метка времени с наносекундами делает имя
// уникальным для повторных сравнений одной пары.
func (w *FileOutputWriter) Save(baseName string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", &entity.WriteError{Path: w.dir, Err: err}
	}

	base := filepath.Base(baseName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "image"
	}

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)

	path := filepath.Join(w.dir, fmt.Sprintf("diff_%s_%s.png", base, stamp))
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &entity.WriteError{Path: path, Err: err}
	}

	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", &entity.WriteError{Path: abs, Err: err}
	}
	return abs, nil
}
