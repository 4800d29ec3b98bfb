package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"go.uber.org/zap"
)

const notificationKey = "booking.notification"

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ChatChannel delivers booking payloads to a Telegram chat: a readable line
// followed by the raw JSON so a bot on the other side can parse it back.
type ChatChannel struct {
	sender   messageSender
	chatID   int64
	messages map[string]string
	logger   *zap.Logger
}

// NewBotChannel authenticates the bot token against the Bot API.
func NewBotChannel(token string, chatID int64, messages map[string]string, logger *zap.Logger) (*ChatChannel, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram bot token is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return NewChatChannel(bot, chatID, messages, logger)
}

func NewChatChannel(sender messageSender, chatID int64, messages map[string]string, logger *zap.Logger) (*ChatChannel, error) {
	if sender == nil {
		return nil, errors.New("telegram sender is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatChannel{
		sender:   sender,
		chatID:   chatID,
		messages: messages,
		logger:   logger,
	}, nil
}

func (channel *ChatChannel) SendData(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	draft, err := picker.DecodeDraftPayload(payload)
	if err != nil {
		return err
	}

	message := tgbotapi.NewMessage(channel.chatID, channel.notificationText(draft)+"\n\n"+string(payload))
	message.DisableWebPagePreview = true
	sent, err := channel.sender.Send(message)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	channel.logger.Info("booking delivered to telegram",
		zap.Int64("chat_id", channel.chatID),
		zap.Int("message_id", sent.MessageID),
	)
	return nil
}

func (channel *ChatChannel) notificationText(draft picker.Draft) string {
	template, ok := channel.messages[notificationKey]
	if !ok || strings.TrimSpace(template) == "" {
		template = "{date} {time}"
	}
	return strings.NewReplacer("{date}", draft.Date.String(), "{time}", draft.Time).Replace(template)
}
