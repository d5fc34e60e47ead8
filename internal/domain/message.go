package domain

import "strings"

type UpdateKind int

const (
	UpdateText UpdateKind = iota
	UpdateCallback
)

// Update описывает входящее событие из Telegram: текст или нажатие кнопки.
type Update struct {
	Kind       UpdateKind
	ChatID     int64
	UserID     int64
	MessageID  int64 // для callback: сообщение с кнопками
	CallbackID int64
	Text       string // текст сообщения или callback data
}

func (u Update) Key() SessionKey {
	return SessionKey{ChatID: u.ChatID, UserID: u.UserID}
}

// Command разбирает "/start", "/start@carbon_bot arg" -> "start".
func (u Update) Command() (string, bool) {
	if u.Kind != UpdateText {
		return "", false
	}
	text := strings.TrimSpace(u.Text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text[1:])
	if len(cmd) == 0 {
		return "", false
	}
	name, _, _ := strings.Cut(cmd[0], "@")
	return strings.ToLower(name), name != ""
}

type Button struct {
	Text string
	Data string
}

// Reply: исходящее сообщение, опционально с inline-клавиатурой.
type Reply struct {
	Text     string
	Keyboard [][]Button
}
