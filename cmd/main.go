package main

import (
	"log"

	"uidiff-bot/config"
	telegram "uidiff-bot/internal/api"
	"uidiff-bot/internal/container"
	"uidiff-bot/internal/infrastructure/capture"
	"uidiff-bot/internal/infrastructure/llm"
	"uidiff-bot/internal/infrastructure/render"
	"uidiff-bot/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	// Хранилище сессий и писатель артефактов
	sessions := storage.NewMemorySessionRepository()
	writer := storage.NewFileOutputWriter(cfg.OutputDir)

	// Анализатор, отрисовщик и захват страниц
	analyzer := llm.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	annotator := render.NewImageAnnotator()
	capturer := capture.NewChromeCapturer(cfg.ChromeBin)

	appContainer := container.New(sessions, analyzer, annotator, writer, capturer)

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
