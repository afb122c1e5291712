package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"uidiff-bot/internal/domain/entity"
	"uidiff-bot/internal/domain/port"
	"uidiff-bot/internal/extract"
)

// ComparisonService — сценарий сравнения двух скриншотов: анализ у внешней
// модели, извлечение структурных блоков, нормализация координат, отрисовка
// подсветки и запись артефакта.
type ComparisonService struct {
	users    *UserService
	sessions port.SessionRepository
	analyzer port.VisionAnalyzer
	annotate port.Annotator
	writer   port.OutputWriter
}

// NewComparisonService создаёт сервис сравнения.
func NewComparisonService(users *UserService, sessions port.SessionRepository,
	analyzer port.VisionAnalyzer, annotate port.Annotator, writer port.OutputWriter) *ComparisonService {
	return &ComparisonService{
		users:    users,
		sessions: sessions,
		analyzer: analyzer,
		annotate: annotate,
		writer:   writer,
	}
}

// AcceptFirstPhoto откладывает эталонный скриншот и переводит пользователя
// к ожиданию второго.
func (s *ComparisonService) AcceptFirstPhoto(ctx context.Context, userID, chatID int64, name string, photo []byte) (*entity.User, error) {
	if err := s.sessions.StashImage(ctx, userID, name, photo); err != nil {
		return nil, err
	}
	return s.users.SetState(ctx, userID, chatID, entity.StateAwaitingSecondPhoto)
}

// CompareWithStashed забирает отложенный эталон и сравнивает его с current.
func (s *ComparisonService) CompareWithStashed(ctx context.Context, userID int64, current []byte) (*entity.ComparisonResult, error) {
	name, base, ok := s.sessions.TakeImage(ctx, userID)
	if !ok || len(base) == 0 {
		return nil, errors.New("first screenshot is not found, start over")
	}
	return s.Compare(ctx, name, base, current)
}

// Compare прогоняет пару скриншотов через весь сценарий. baseName задаёт
// основу имени выходного файла.
//
// Если отличий нет, путь в результате остаётся nil и файл не создаётся.
// Если артефакт не записался, результат с анализом и списком отличий
// возвращается вместе с ошибкой: сам анализ при этом не теряется.
func (s *ComparisonService) Compare(ctx context.Context, baseName string, baseImage, currentImage []byte) (*entity.ComparisonResult, error) {
	if s.analyzer == nil {
		return nil, errors.New("analyzer is not configured")
	}

	runID := uuid.NewString()

	// Настоящие размеры обоих растров. Декодируются только заголовки.
	var baseCfg, curCfg image.Config
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		baseCfg, _, err = image.DecodeConfig(bytes.NewReader(baseImage))
		if err != nil {
			return &entity.ImageLoadError{Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		curCfg, _, err = image.DecodeConfig(bytes.NewReader(currentImage))
		if err != nil {
			return &entity.ImageLoadError{Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[compare %s] start, base %dx%d, current %dx%d",
		runID, baseCfg.Width, baseCfg.Height, curCfg.Width, curCfg.Height)

	analysis, err := s.analyzer.CompareImages(ctx, baseImage, currentImage)
	if err != nil {
		return nil, err
	}

	var dims entity.DimensionsReport
	if err := extract.Object(analysis, "processed_dimensions", &dims); err != nil {
		return nil, err
	}

	var diffs []entity.RawDifference
	if err := extract.Object(analysis, "differences", &diffs); err != nil {
		return nil, err
	}

	result := &entity.ComparisonResult{
		Analysis:    analysis,
		Differences: diffs,
		CreatedAt:   time.Now().UTC(),
	}

	if len(diffs) == 0 {
		log.Printf("[compare %s] no differences reported", runID)
		return result, nil
	}

	// Координаты сервиса даны для второй картинки в её «обработанном»
	// размере; переводим их в пиксели настоящего растра.
	sf, err := entity.NewScaleFactors(dims.Image2, curCfg.Width, curCfg.Height)
	if err != nil {
		return nil, err
	}

	canonical := entity.BuildCanonical(diffs, sf, float64(curCfg.Width), float64(curCfg.Height))
	if len(canonical) == 0 {
		log.Printf("[compare %s] %d differences, none with geometry", runID, len(diffs))
		return result, nil
	}

	annotated, err := s.annotate.Annotate(currentImage, canonical, len(diffs))
	if err != nil {
		return nil, err
	}

	path, err := s.writer.Save(baseName, annotated)
	if err != nil {
		// анализ уже получен, его отдаём даже при сбое записи
		return result, err
	}

	result.HighlightedImagePath = &path
	log.Printf("[compare %s] %d differences, artifact %s", runID, len(diffs), path)
	return result, nil
}
