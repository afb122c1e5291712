// Package llm — клиент мультимодальной модели для сравнения скриншотов.
package llm

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"uidiff-bot/internal/domain/port"
)

// systemPrompt задаёт формат ответа: свободный текст с двумя именованными
// JSON-блоками, которые затем достаёт пакет extract.
const systemPrompt = `You are a meticulous UI regression reviewer. You receive two screenshots
of the same interface: the first is the baseline, the second is the current version.

Compare them and describe every visual difference you find. Write your analysis
as free-form text, but you MUST include exactly two fenced JSON code blocks:

1. A block with the dimensions you worked at:
` + "```json" + `
{ "processed_dimensions": { "image1": {"width": W, "height": H}, "image2": {"width": W, "height": H} } }
` + "```" + `

2. A block with the differences:
` + "```json" + `
{ "differences": [ { "type": "...", "location": "...", "description": "...",
  "coordinates": {"x1": N, "y1": N, "x2": N, "y2": N},
  "highlight_area": {"x1": N, "y1": N, "x2": N, "y2": N},
  "before": "...", "after": "..." } ] }
` + "```" + `

Rules:
- "type" is one of: text_change, layout_change, element_added, element_removed, style_change.
- All coordinates refer to the SECOND image at the processed_dimensions you report for it.
- "highlight_area" is the rectangle to draw around the difference; omit it when the
  difference has no meaningful region.
- If the screenshots are identical, report "differences": [] — the empty list is a valid answer.
- Both JSON blocks are mandatory even when there are no differences.`

// Gemini — порт port.VisionAnalyzer поверх Google Generative AI.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini создаёт клиент для указанной модели.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

var _ port.VisionAnalyzer = (*Gemini)(nil)

// CompareImages отправляет оба скриншота одной репликой и возвращает
// текст ответа модели как есть. Ретраев нет: транзиентный сбой отдаётся
// вызывающему, решение о повторе — за ним.
func (g *Gemini) CompareImages(ctx context.Context, baseImage, currentImage []byte) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("gemini: api key is empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	parts := []genai.Part{
		genai.Text("Compare the two screenshots. The first is the baseline, the second is the current version."),
		&genai.Blob{MIMEType: sniffMIME(baseImage), Data: baseImage},
		&genai.Blob{MIMEType: sniffMIME(currentImage), Data: currentImage},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	text := firstText(resp)
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

// sniffMIME определяет тип картинки по магическим байтам,
// в спорных случаях полагается на http.DetectContentType.
func sniffMIME(data []byte) string {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	default:
		return http.DetectContentType(data)
	}
}

func ptrFloat32(v float32) *float32 { return &v }
