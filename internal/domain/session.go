package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionKey: один диалог на пару чат+пользователь.
type SessionKey struct {
	ChatID int64
	UserID int64
}

func (k SessionKey) String() string {
	return fmt.Sprintf("%d:%d", k.ChatID, k.UserID)
}

// Session хранит ответы пользователя до финального расчёта.
type Session struct {
	ID     string `json:"id"`
	ChatID int64  `json:"chat_id"`
	UserID int64  `json:"user_id"`
	State  State  `json:"state"`

	// ответы; поля, не нужные выбранному транспорту, остаются нулевыми
	Transport  Transport `json:"transport,omitempty"`
	Brand      string    `json:"brand,omitempty"`
	EngineSize float64   `json:"engine_size,omitempty"`
	DistanceKm float64   `json:"distance_km,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(key SessionKey, now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		ChatID:    key.ChatID,
		UserID:    key.UserID,
		State:     StateTransport,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s Session) Key() SessionKey {
	return SessionKey{ChatID: s.ChatID, UserID: s.UserID}
}

func (s Session) Trip() Trip {
	return Trip{
		Transport:  s.Transport,
		Brand:      s.Brand,
		EngineSize: s.EngineSize,
		DistanceKm: s.DistanceKm,
	}
}
