package tg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zelenin/go-tdlib/client"

	"github.com/larriantoniy/tg_carbon_bot/internal/adapters/tg/tgconv"
	"github.com/larriantoniy/tg_carbon_bot/internal/config"
	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

// BotClient реализует ports.TelegramClient через TDLib с авторизацией по bot token.
type BotClient struct {
	client   *client.Client
	listener *client.Listener
	logger   *slog.Logger
	selfId   int64
}

var ErrRateLimited = errors.New("tdlib: too many requests")

func NewBotClient(cfg config.TelegramConfig, log *slog.Logger) (*BotClient, error) {
	dbDir := filepath.Join(cfg.BaseDir, "database")
	filesDir := filepath.Join(cfg.BaseDir, "files")

	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir files dir: %w", err)
	}

	if _, err := client.SetLogVerbosityLevel(&client.SetLogVerbosityLevelRequest{
		NewVerbosityLevel: 1,
	}); err != nil {
		log.Error("TDLib SetLogVerbosityLevel", "error", err)
	}

	var opts []client.Option
	if cfg.Proxy.Enabled() {
		checkProxy(log, cfg.Proxy)
		opts = append(opts, client.WithProxy(&client.AddProxyRequest{
			Server: cfg.Proxy.Server,
			Port:   cfg.Proxy.Port,
			Enable: true,
			Type: &client.ProxyTypeSocks5{
				Username: cfg.Proxy.Username,
				Password: cfg.Proxy.Password,
			},
		}))
	}

	authorizer := client.BotAuthorizer(tdParams(cfg, dbDir, filesDir), cfg.BotToken)

	tdCli, err := client.NewClient(authorizer, opts...)
	if err != nil {
		log.Error("TDLib NewClient error", "error", err)
		return nil, err
	}

	me, err := tdCli.GetMe()
	if err != nil {
		log.Error("GetMe failed", "error", err)
		tdCli.Close()
		return nil, err
	}

	var username string
	if me.Usernames != nil && len(me.Usernames.ActiveUsernames) > 0 {
		username = me.Usernames.ActiveUsernames[0]
	}
	log.Info("TDLib bot initialized and authorized", "self_id", me.Id, "username", username)

	return &BotClient{
		client: tdCli,
		logger: log,
		selfId: me.Id,
	}, nil
}

// Реализация ports.TelegramClient:

func (t *BotClient) Close() {
	if t.listener != nil {
		t.listener.Close()
	}
	t.client.Close()
}

// Listen возвращает канал доменных событий и запускает обработку обновлений TDLib.
func (t *BotClient) Listen() (<-chan domain.Update, error) {
	out := make(chan domain.Update)

	t.listener = t.client.GetListener()
	go func() {
		defer close(out)
		for update := range t.listener.Updates {
			switch upd := update.(type) {
			case *client.UpdateNewMessage:
				if u, ok := t.fromMessage(upd.Message); ok {
					out <- u
				}
			case *client.UpdateNewCallbackQuery:
				if u, ok := t.fromCallback(upd); ok {
					out <- u
				}
			}
		}
	}()

	return out, nil
}

func (t *BotClient) fromMessage(m *client.Message) (domain.Update, bool) {
	if m == nil {
		return domain.Update{}, false
	}
	msg := tgconv.Message{
		ID:       m.Id,
		ChatID:   m.ChatId,
		Outgoing: m.IsOutgoing,
	}
	if sender, ok := m.SenderId.(*client.MessageSenderUser); ok {
		msg.FromUser = true
		msg.SenderUserID = sender.UserId
	}
	if text, ok := m.Content.(*client.MessageText); ok && text.Text != nil {
		msg.HasText = true
		msg.Text = text.Text.Text
	}

	u, ok := tgconv.MessageUpdate(msg, t.selfId)
	if !ok && !msg.HasText && m.Content != nil {
		t.logger.Debug("skip non-text message", "chat_id", m.ChatId, "content_type", m.Content.MessageContentType())
	}
	return u, ok
}

func (t *BotClient) fromCallback(upd *client.UpdateNewCallbackQuery) (domain.Update, bool) {
	cb := tgconv.Callback{
		ID:           int64(upd.Id),
		ChatID:       upd.ChatId,
		MessageID:    upd.MessageId,
		SenderUserID: upd.SenderUserId,
	}
	if payload, ok := upd.Payload.(*client.CallbackQueryPayloadData); ok {
		cb.HasData = true
		cb.Data = payload.Data
	}

	u, ok := tgconv.CallbackUpdate(cb)
	if !ok {
		t.logger.Debug("skip callback without data", "chat_id", upd.ChatId)
	}
	return u, ok
}

func (t *BotClient) SendMessage(chatID int64, reply domain.Reply) error {
	_, err := t.client.SendMessage(&client.SendMessageRequest{
		ChatId:              chatID,
		ReplyMarkup:         inlineKeyboard(reply.Keyboard),
		InputMessageContent: inputText(reply.Text),
	})
	if err != nil {
		if isTooManyRequests(err) {
			t.logger.Error("SendMessage rate-limited", "chat_id", chatID, "error", err)
			return ErrRateLimited
		}
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

func (t *BotClient) EditMessage(chatID, messageID int64, reply domain.Reply) error {
	_, err := t.client.EditMessageText(&client.EditMessageTextRequest{
		ChatId:              chatID,
		MessageId:           messageID,
		ReplyMarkup:         inlineKeyboard(reply.Keyboard),
		InputMessageContent: inputText(reply.Text),
	})
	if err != nil {
		if isTooManyRequests(err) {
			return ErrRateLimited
		}
		return fmt.Errorf("edit message %d in %d: %w", messageID, chatID, err)
	}
	return nil
}

func (t *BotClient) AnswerCallback(queryID int64) error {
	_, err := t.client.AnswerCallbackQuery(&client.AnswerCallbackQueryRequest{
		CallbackQueryId: client.JsonInt64(queryID),
	})
	if err != nil {
		return fmt.Errorf("answer callback %d: %w", queryID, err)
	}
	return nil
}

func inputText(text string) *client.InputMessageText {
	return &client.InputMessageText{
		Text: &client.FormattedText{
			Text: text,
		},
		ClearDraft: true,
	}
}

// inlineKeyboard: пустая клавиатура = nil, TDLib тогда убирает кнопки у сообщения.
func inlineKeyboard(rows [][]domain.Button) client.ReplyMarkup {
	spec := tgconv.Keyboard(rows)
	if spec == nil {
		return nil
	}
	kb := make([][]*client.InlineKeyboardButton, 0, len(spec))
	for _, row := range spec {
		buttons := make([]*client.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, &client.InlineKeyboardButton{
				Text: b.Text,
				Type: &client.InlineKeyboardButtonTypeCallback{Data: b.Data},
			})
		}
		kb = append(kb, buttons)
	}
	return &client.ReplyMarkupInlineKeyboard{Rows: kb}
}

// isTooManyRequests: go-tdlib возвращает ошибки значением client.ResponseError.
func isTooManyRequests(err error) bool {
	var rerr client.ResponseError
	if errors.As(err, &rerr) && rerr.Err != nil {
		return tgconv.TooManyRequests(rerr.Err.Code, rerr.Err.Message)
	}
	return false
}
