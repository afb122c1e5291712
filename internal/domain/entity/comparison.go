package entity

import (
	"fmt"
	"time"
)

// ProcessedDimensions — размер холста, в котором сервис анализировал картинку.
// Не обязан совпадать с настоящим растром: сервис может уменьшать вход.
type ProcessedDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DimensionsReport — размеры обеих «обработанных» картинок из ответа сервиса.
type DimensionsReport struct {
	Image1 ProcessedDimensions `json:"image1"`
	Image2 ProcessedDimensions `json:"image2"`
}

// ScaleFactors — коэффициенты перевода координат сервиса в пиксели растра.
type ScaleFactors struct {
	X float64
	Y float64
}

// NewScaleFactors считает коэффициенты (trueWidth/claimedWidth, trueHeight/claimedHeight).
// Нулевой заявленный размер — испорченный ответ, до деления дело не доходит.
func NewScaleFactors(claimed ProcessedDimensions, trueWidth, trueHeight int) (ScaleFactors, error) {
	if claimed.Width <= 0 || claimed.Height <= 0 {
		return ScaleFactors{}, &MalformedPayloadError{
			Object: "processed_dimensions",
			Reason: fmt.Sprintf("degenerate claimed size %dx%d", claimed.Width, claimed.Height),
		}
	}
	return ScaleFactors{
		X: float64(trueWidth) / float64(claimed.Width),
		Y: float64(trueHeight) / float64(claimed.Height),
	}, nil
}

// ComparisonResult — итог одного сравнения для внешнего потребителя.
// HighlightedImagePath == nil означает «артефакт не построен»: либо отличий
// нет (успешный исход), либо запись файла не удалась.
type ComparisonResult struct {
	Analysis             string          `json:"analysis"`
	Differences          []RawDifference `json:"differences"`
	HighlightedImagePath *string         `json:"highlightedImagePath"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// HasArtifact сообщает, построена ли картинка с подсветкой.
func (r *ComparisonResult) HasArtifact() bool {
	return r.HighlightedImagePath != nil && *r.HighlightedImagePath != ""
}
