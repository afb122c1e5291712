//go:build !gocv
// +build !gocv

package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"uidiff-bot/internal/domain/entity"
	"uidiff-bot/internal/infrastructure/render"
	"uidiff-bot/internal/infrastructure/storage"
)

type fakeAnalyzer struct {
	response string
	err      error
}

func (f *fakeAnalyzer) CompareImages(_ context.Context, _, _ []byte) (string, error) {
	return f.response, f.err
}

const responseWithDifference = "I looked at both versions closely.\n" +
	"```json\n" +
	`{ "processed_dimensions": { "image1": {"width":400,"height":300}, "image2": {"width":400,"height":300} } }` +
	"\n```\n" +
	"One thing changed in the header:\n" +
	"```json\n" +
	`{ "differences": [ { "type": "text_change", "location": "header",
		"description": "title reworded",
		"highlight_area": {"x1":50,"y1":50,"x2":150,"y2":100},
		"before": "Hello", "after": "Hi" } ] }` +
	"\n```\n"

const responseNoDifferences = "The screenshots are identical.\n" +
	"```json\n" +
	`{ "processed_dimensions": { "image1": {"width":400,"height":300}, "image2": {"width":400,"height":300} } }` +
	"\n```\n" +
	"```json\n" +
	`{ "differences": [] }` +
	"\n```\n"

func pngCanvas(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newService(analyzer *fakeAnalyzer, outDir string) *ComparisonService {
	repo := storage.NewMemorySessionRepository()
	users := NewUserService(repo)
	return NewComparisonService(users, repo, analyzer,
		render.NewImageAnnotator(), storage.NewFileOutputWriter(outDir))
}

func TestComparisonService_Compare(t *testing.T) {
	outDir := t.TempDir()
	svc := newService(&fakeAnalyzer{response: responseWithDifference}, outDir)

	base := pngCanvas(t, 800, 600)
	current := pngCanvas(t, 800, 600)

	result, err := svc.Compare(context.Background(), "screen.png", base, current)
	require.NoError(t, err)
	require.True(t, result.HasArtifact())
	require.Len(t, result.Differences, 1)
	require.Equal(t, responseWithDifference, result.Analysis)

	data, err := os.ReadFile(*result.HighlightedImagePath)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	// исходный размер плюс лента с итогом
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 640, img.Bounds().Dy())
}

func TestComparisonService_NoDifferences(t *testing.T) {
	outDir := t.TempDir()
	svc := newService(&fakeAnalyzer{response: responseNoDifferences}, outDir)

	result, err := svc.Compare(context.Background(), "screen.png", pngCanvas(t, 100, 100), pngCanvas(t, 100, 100))
	require.NoError(t, err)
	require.False(t, result.HasArtifact())
	require.Empty(t, result.Differences)

	// файл не создаётся
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestComparisonService_NoGeometry(t *testing.T) {
	response := "```json\n" +
		`{ "processed_dimensions": { "image1": {"width":100,"height":100}, "image2": {"width":100,"height":100} } }` +
		"\n```\n```json\n" +
		`{ "differences": [ { "type": "text_change", "description": "no area reported" } ] }` +
		"\n```"

	outDir := t.TempDir()
	svc := newService(&fakeAnalyzer{response: response}, outDir)

	result, err := svc.Compare(context.Background(), "a.png", pngCanvas(t, 100, 100), pngCanvas(t, 100, 100))
	require.NoError(t, err)
	require.Len(t, result.Differences, 1)
	require.False(t, result.HasArtifact())
}

func TestComparisonService_MissingBlock(t *testing.T) {
	svc := newService(&fakeAnalyzer{response: "nothing structured here"}, t.TempDir())

	_, err := svc.Compare(context.Background(), "a.png", pngCanvas(t, 10, 10), pngCanvas(t, 10, 10))
	require.Error(t, err)

	var eErr *entity.ExtractionError
	require.ErrorAs(t, err, &eErr)
	require.Equal(t, "processed_dimensions", eErr.Object)
}

func TestComparisonService_BadImage(t *testing.T) {
	svc := newService(&fakeAnalyzer{response: responseNoDifferences}, t.TempDir())

	_, err := svc.Compare(context.Background(), "a.png", []byte("not an image"), pngCanvas(t, 10, 10))
	require.Error(t, err)

	var lErr *entity.ImageLoadError
	require.ErrorAs(t, err, &lErr)
}

func TestComparisonService_WriteFailureKeepsAnalysis(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	svc := newService(&fakeAnalyzer{response: responseWithDifference}, blocked)

	result, err := svc.Compare(context.Background(), "a.png", pngCanvas(t, 800, 600), pngCanvas(t, 800, 600))
	require.Error(t, err)

	var wErr *entity.WriteError
	require.ErrorAs(t, err, &wErr)

	// анализ и список отличий не теряются
	require.NotNil(t, result)
	require.Len(t, result.Differences, 1)
	require.False(t, result.HasArtifact())
}

func TestComparisonService_StashFlow(t *testing.T) {
	svc := newService(&fakeAnalyzer{response: responseNoDifferences}, t.TempDir())
	ctx := context.Background()

	user, err := svc.AcceptFirstPhoto(ctx, 1, 10, "base.png", pngCanvas(t, 50, 50))
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSecondPhoto, user.State)

	result, err := svc.CompareWithStashed(ctx, 1, pngCanvas(t, 50, 50))
	require.NoError(t, err)
	require.False(t, result.HasArtifact())

	// эталон одноразовый
	_, err = svc.CompareWithStashed(ctx, 1, pngCanvas(t, 50, 50))
	require.Error(t, err)
}
