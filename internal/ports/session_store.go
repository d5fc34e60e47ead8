package ports

import (
	"context"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

// SessionStore хранит незавершённые диалоги.
// Get возвращает domain.ErrSessionNotFound, если сессии нет или она истекла.
type SessionStore interface {
	Get(ctx context.Context, key domain.SessionKey) (domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context, key domain.SessionKey) error
}

// RateRepo загружает таблицу коэффициентов марок при старте.
type RateRepo interface {
	LoadRates(ctx context.Context) (domain.RateTable, error)
}
