package tgconv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

const selfID = int64(999)

func TestMessageUpdate(t *testing.T) {
	valid := Message{ID: 5, ChatID: 100, SenderUserID: 7, FromUser: true, Text: "2,0", HasText: true}

	got, ok := MessageUpdate(valid, selfID)
	assert.True(t, ok)
	assert.Equal(t, domain.Update{
		Kind:      domain.UpdateText,
		ChatID:    100,
		UserID:    7,
		MessageID: 5,
		Text:      "2,0",
	}, got)

	tests := []struct {
		name   string
		mutate func(m *Message)
	}{
		{"outgoing", func(m *Message) { m.Outgoing = true }},
		{"sent by the bot itself", func(m *Message) { m.SenderUserID = selfID }},
		{"sent on behalf of a chat", func(m *Message) { m.FromUser = false }},
		{"not text", func(m *Message) { m.HasText = false; m.Text = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			_, ok := MessageUpdate(m, selfID)
			assert.False(t, ok)
		})
	}
}

func TestCallbackUpdate(t *testing.T) {
	got, ok := CallbackUpdate(Callback{ID: 42, ChatID: 100, MessageID: 11, SenderUserID: 7, Data: []byte("car"), HasData: true})
	assert.True(t, ok)
	assert.Equal(t, domain.Update{
		Kind:       domain.UpdateCallback,
		ChatID:     100,
		UserID:     7,
		MessageID:  11,
		CallbackID: 42,
		Text:       "car",
	}, got)

	_, ok = CallbackUpdate(Callback{ID: 43, ChatID: 100, SenderUserID: 7})
	assert.False(t, ok, "game callbacks carry no data")
}

func TestKeyboard(t *testing.T) {
	assert.Nil(t, Keyboard(nil))

	got := Keyboard([][]domain.Button{
		{{Text: "✈️ Plane", Data: "plane"}},
		{{Text: "Toyota", Data: "Toyota"}, {Text: "Honda", Data: "Honda"}},
	})
	assert.Equal(t, [][]CallbackButton{
		{{Text: "✈️ Plane", Data: []byte("plane")}},
		{{Text: "Toyota", Data: []byte("Toyota")}, {Text: "Honda", Data: []byte("Honda")}},
	}, got)
}

func TestTooManyRequests(t *testing.T) {
	tests := []struct {
		name    string
		code    int32
		message string
		want    bool
	}{
		{"flood code", 429, "Too Many Requests: retry after 5", true},
		{"flood text only", 400, "too many requests", true},
		{"blocked by user", 403, "Forbidden: bot was blocked by the user", false},
		{"message not modified", 400, "Bad Request: message is not modified", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TooManyRequests(tt.code, tt.message))
		})
	}
}
