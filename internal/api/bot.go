package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"uidiff-bot/internal/container"
	"uidiff-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для поиска отличий между двумя скриншотами интерфейса.

📸 Отправьте два скриншота одной страницы — эталон и текущую версию —
и я подсвечу всё, что изменилось.

📋 Команды:
/compare — начать сравнение двух скриншотов
/compareurls <url1> <url2> — сравнить две страницы по ссылкам
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /compare
2️⃣ Пришлите эталонный скриншот
3️⃣ Пришлите текущий скриншот
4️⃣ Получите разбор отличий и картинку с подсветкой

🌐 Или сразу две ссылки: /compareurls https://old.example.com https://new.example.com

🎨 Цвет рамки зависит от типа отличия:
🔴 текст · 🔵 раскладка · 🟢 добавлено · 🟠 удалено · 🟣 стиль

📋 Команды:
/compare — начать сравнение
/cancel — отменить операцию`

	msgAwaitingFirst   = "📸 Пришлите первый скриншот — эталон."
	msgAwaitingSecond  = "📸 Эталон получил. Теперь пришлите текущую версию."
	msgCancelled       = "❌ Операция отменена. Отправьте /compare для нового сравнения."
	msgSendCommand     = "📸 Отправьте /compare, чтобы начать сравнение двух скриншотов."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Сравниваю скриншоты, это занимает до минуты..."
	msgCapturing       = "🌐 Открываю страницы и снимаю скриншоты..."
	msgNoDifferences   = "✅ Отличий не найдено — версии совпадают."
	msgProcessingError = "⚠️ Не удалось обработать изображения. Попробуйте ещё раз."
	msgCompareURLUsage = "🌐 Формат: /compareurls <url эталона> <url текущей версии>"
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	c   *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{api: api, c: c}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.c.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCommand)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.c.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "compare":
		b.c.UserService.BeginCompare(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingFirst)

	case "compareurls":
		b.handleCompareURLs(ctx, msg)

	case "cancel":
		b.c.UserService.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto ведёт пользователя по сценарию «эталон → текущая версия».
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	// Файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	switch user.State {
	case entity.StateAwaitingFirstPhoto:
		name := fmt.Sprintf("tg_%s.jpg", photo.FileUniqueID)
		if _, err := b.c.ComparisonService.AcceptFirstPhoto(ctx, user.ID, user.ChatID, name, imageData); err != nil {
			log.Printf("Error stashing photo: %v", err)
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgAwaitingSecond)

	case entity.StateAwaitingSecondPhoto:
		b.c.UserService.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing)
		b.sendMessage(msg.Chat.ID, msgProcessing)

		result, err := b.c.ComparisonService.CompareWithStashed(ctx, user.ID, imageData)
		b.deliverResult(msg.Chat.ID, result, err)
		b.c.UserService.Cancel(ctx, user.ID, user.ChatID)

	default:
		b.sendMessage(msg.Chat.ID, msgSendCommand)
	}
}

// handleCompareURLs снимает скриншоты двух страниц и сравнивает их.
func (b *Bot) handleCompareURLs(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		b.sendMessage(msg.Chat.ID, msgCompareURLUsage)
		return
	}

	if b.c.Capturer == nil {
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendMessage(msg.Chat.ID, msgCapturing)

	base, err := b.c.Capturer.Capture(ctx, args[0])
	if err != nil {
		log.Printf("Error capturing %s: %v", args[0], err)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("⚠️ Не удалось открыть %s", args[0]))
		return
	}

	current, err := b.c.Capturer.Capture(ctx, args[1])
	if err != nil {
		log.Printf("Error capturing %s: %v", args[1], err)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("⚠️ Не удалось открыть %s", args[1]))
		return
	}

	b.sendMessage(msg.Chat.ID, msgProcessing)

	result, err := b.c.ComparisonService.Compare(ctx, "page.png", base, current)
	b.deliverResult(msg.Chat.ID, result, err)
}

// deliverResult отправляет разбор отличий и, если есть, картинку с подсветкой.
func (b *Bot) deliverResult(chatID int64, result *entity.ComparisonResult, err error) {
	if err != nil {
		log.Printf("Error comparing: %v", err)

		// при сбое записи анализ всё равно есть — отдаём хотя бы его
		var wErr *entity.WriteError
		if errors.As(err, &wErr) && result != nil {
			b.sendMessage(chatID, b.summarize(result))
			b.sendMessage(chatID, "⚠️ Картинку с подсветкой сохранить не удалось.")
			return
		}

		b.sendMessage(chatID, msgProcessingError)
		return
	}

	if len(result.Differences) == 0 {
		b.sendMessage(chatID, msgNoDifferences)
		return
	}

	b.sendMessage(chatID, b.summarize(result))

	if result.HasArtifact() {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(*result.HighlightedImagePath))
		photo.Caption = fmt.Sprintf("🔍 Найдено отличий: %d", len(result.Differences))
		if _, err := b.api.Send(photo); err != nil {
			log.Printf("Error sending photo: %v", err)
		}
	}
}

// summarize строит текстовый разбор по списку отличий.
func (b *Bot) summarize(result *entity.ComparisonResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 Найдено отличий: %d\n", len(result.Differences))
	for i, d := range result.Differences {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, typeEmoji(d.Type))
		if d.Location != "" {
			fmt.Fprintf(&sb, " [%s]", d.Location)
		}
		if d.Description != "" {
			fmt.Fprintf(&sb, " %s", d.Description)
		}
		if d.Before != "" || d.After != "" {
			fmt.Fprintf(&sb, "\n   «%s» → «%s»", d.Before, d.After)
		}
	}
	return sb.String()
}

func typeEmoji(diffType string) string {
	switch diffType {
	case "layout_change":
		return "🔵"
	case "element_added":
		return "🟢"
	case "element_removed":
		return "🟠"
	case "style_change":
		return "🟣"
	default:
		return "🔴"
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, &entity.AccessError{Path: fileID, Err: err}
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, &entity.AccessError{Path: fileID, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.AccessError{Path: fileID, Err: err}
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
