package container

import (
	app "uidiff-bot/internal/application"
	"uidiff-bot/internal/domain/port"
)

type Container struct {
	UserService       *app.UserService
	ComparisonService *app.ComparisonService
	Capturer          port.ScreenCapturer
}

func New(sessions port.SessionRepository, analyzer port.VisionAnalyzer,
	annotator port.Annotator, writer port.OutputWriter, capturer port.ScreenCapturer) *Container {
	userService := app.NewUserService(sessions)
	comparisonService := app.NewComparisonService(userService, sessions, analyzer, annotator, writer)

	return &Container{
		UserService:       userService,
		ComparisonService: comparisonService,
		Capturer:          capturer,
	}
}
