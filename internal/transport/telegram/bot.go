package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"passport_parser/internal/adapters/archive"
	"passport_parser/internal/services/parser"
)

const (
	msgReceived  = "📦 Получен архив, начинаю обработку..."
	msgBadZip    = "❌ Ошибка: файл повреждён или не является ZIP-архивом."
	msgNoDocx    = "⚠️ В архиве нет файлов Word (.docx)"
	msgNoData    = "⚠️ Не удалось извлечь данные ни из одного документа. Таблица с ошибками приложена."
	msgTooLarge  = "❌ Архив слишком большой."
	msgTimeout   = "⏱ Обработка архива заняла слишком много времени, попробуй отправить его частями."
	msgHint      = "📩 Отправь мне ZIP-архив с файлами Word (.docx) для парсинга."
	msgFailedFmt = "❌ Ошибка при парсинге: %v"
	captionFmt   = "✅ Парсинг завершён успешно!\nДокументов: %d, с данными: %d, с ошибками: %d"
)

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Parser fetches an archive by URL and parses it.
type Parser interface {
	ParsePath(ctx context.Context, filePath, userID string) (parser.Result, error)
}

type Bot struct {
	API      API
	Parser   Parser
	MaxBytes int64
	// Timeout bounds one archive.
	Timeout time.Duration
}

func New(api API, p Parser, maxBytes int64) *Bot {
	return &Bot{API: api, Parser: p, MaxBytes: maxBytes, Timeout: 10 * time.Minute}
}

// Start connects with token and serves updates until ctx is done.
func Start(ctx context.Context, token string, p Parser, maxBytes int64) error {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("telegram connect: %w", err)
	}
	log.Printf("[BOT] authorized as @%s", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	return New(api, p, maxBytes).Run(ctx, updates)
}

// Run handles updates one at a time until ctx is done or the channel closes.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done():
			log.Printf("[BOT] stopping")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.Handle(ctx, upd)
		}
	}
}

func isZip(d *tgbotapi.Document) bool {
	if d == nil {
		return false
	}
	if strings.EqualFold(path.Ext(d.FileName), ".zip") {
		return true
	}
	switch d.MimeType {
	case "application/zip", "application/x-zip-compressed":
		return true
	}
	return false
}

func (b *Bot) Handle(ctx context.Context, upd tgbotapi.Update) {
	m := upd.Message
	if m == nil || m.Chat == nil {
		return
	}
	if !isZip(m.Document) {
		b.reply(m, msgHint)
		return
	}
	b.handleArchive(ctx, m)
}

func (b *Bot) handleArchive(ctx context.Context, m *tgbotapi.Message) {
	userID := ""
	if m.From != nil {
		userID = strconv.FormatInt(m.From.ID, 10)
	}
	log.Printf("[BOT][ARCHIVE] chat=%d user=%s name=%q size=%d", m.Chat.ID, userID, m.Document.FileName, m.Document.FileSize)

	b.reply(m, msgReceived)

	if b.MaxBytes > 0 && int64(m.Document.FileSize) > b.MaxBytes {
		b.reply(m, msgTooLarge)
		return
	}

	url, err := b.API.GetFileDirectURL(m.Document.FileID)
	if err != nil {
		log.Printf("[BOT][ERR] file url: %v", err)
		b.reply(m, fmt.Sprintf(msgFailedFmt, "не удалось скачать файл"))
		return
	}

	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}

	res, err := b.Parser.ParsePath(ctx, url, userID)
	if err != nil {
		log.Printf("[BOT][ERR] run=%s: %v", res.RunID, err)
		b.reply(m, replyFor(err))
		return
	}

	st := res.Table.Stats
	doc := tgbotapi.NewDocument(m.Chat.ID, tgbotapi.FileBytes{Name: res.Filename, Bytes: res.XLSX})
	doc.ReplyToMessageID = m.MessageID
	doc.Caption = fmt.Sprintf(captionFmt, st.Documents, st.Extracted, st.Failed)
	if !res.Table.HasData() {
		doc.Caption = msgNoData
	}
	if _, err := b.API.Send(doc); err != nil {
		log.Printf("[BOT][ERR] send document: %v", err)
		return
	}
	log.Printf("[BOT][DONE] run=%s chat=%d documents=%d", res.RunID, m.Chat.ID, st.Documents)
}

func replyFor(err error) string {
	switch {
	case errors.Is(err, archive.ErrBadArchive):
		return msgBadZip
	case errors.Is(err, archive.ErrNoDocx), errors.Is(err, parser.ErrNoDocuments):
		return msgNoDocx
	case errors.Is(err, parser.ErrArchiveTooLarge):
		return msgTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	}
	return fmt.Sprintf(msgFailedFmt, err)
}

func (b *Bot) reply(m *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyToMessageID = m.MessageID
	if _, err := b.API.Send(msg); err != nil {
		log.Printf("[BOT][ERR] send: %v", err)
	}
}
