package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ghunsub/internal/models"
)

// Bot pushes unsubscribe notices to a Telegram chat.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

// SendNotice mirrors the email notice in Telegram form. Subject types
// without a web page mapping are an error, same as for email.
func (b *Bot) SendNotice(notice models.Notice) error {
	url, err := notice.HumanURL()
	if err != nil {
		return err
	}

	message := fmt.Sprintf("🔕 Unsubscribed from %q\n\n%s (%s)\n%s",
		notice.Title, notice.Repository, strings.ToLower(notice.SubjectType), url)
	msg := tgbotapi.NewMessage(b.chatID, escapeMarkdown(message))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	return nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(text)
}
