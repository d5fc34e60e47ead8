// Package tgconv переводит события TDLib в доменные и обратно.
// Пакет не импортирует go-tdlib, поэтому тестируется без libtdjson.
package tgconv

import (
	"strings"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

const codeTooManyRequests = 429

// Message: поля client.Message, нужные боту.
type Message struct {
	ID           int64
	ChatID       int64
	SenderUserID int64
	FromUser     bool // отправитель пользователь, а не чат или канал
	Outgoing     bool
	Text         string
	HasText      bool
}

// Callback: поля client.UpdateNewCallbackQuery с data-payload.
type Callback struct {
	ID           int64
	ChatID       int64
	MessageID    int64
	SenderUserID int64
	Data         []byte
	HasData      bool
}

// CallbackButton: inline-кнопка с callback data.
type CallbackButton struct {
	Text string
	Data []byte
}

// MessageUpdate отбрасывает исходящие, свои, не от пользователя и нетекстовые сообщения.
func MessageUpdate(m Message, selfID int64) (domain.Update, bool) {
	if m.Outgoing || !m.FromUser || m.SenderUserID == selfID || !m.HasText {
		return domain.Update{}, false
	}
	return domain.Update{
		Kind:      domain.UpdateText,
		ChatID:    m.ChatID,
		UserID:    m.SenderUserID,
		MessageID: m.ID,
		Text:      m.Text,
	}, true
}

func CallbackUpdate(c Callback) (domain.Update, bool) {
	if !c.HasData {
		return domain.Update{}, false
	}
	return domain.Update{
		Kind:       domain.UpdateCallback,
		ChatID:     c.ChatID,
		UserID:     c.SenderUserID,
		MessageID:  c.MessageID,
		CallbackID: c.ID,
		Text:       string(c.Data),
	}, true
}

// Keyboard возвращает nil для пустой клавиатуры: TDLib тогда убирает кнопки.
func Keyboard(rows [][]domain.Button) [][]CallbackButton {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]CallbackButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]CallbackButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, CallbackButton{Text: b.Text, Data: []byte(b.Data)})
		}
		out = append(out, buttons)
	}
	return out
}

// TooManyRequests классифицирует ошибку TDLib по коду и тексту.
func TooManyRequests(code int32, message string) bool {
	return code == codeTooManyRequests ||
		strings.Contains(strings.ToLower(message), "too many requests")
}
