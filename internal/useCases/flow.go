package useCases

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

type InputKind int

const (
	InputStart InputKind = iota
	InputCancel
	InputAnswer
)

// Input: один ход пользователя.
type Input struct {
	Kind  InputKind
	Value string
}

type EffectKind int

const (
	// EffectPrompt: спросить поле Effect.Field
	EffectPrompt EffectKind = iota
	// EffectReprompt: ответ не принят, спросить то же поле ещё раз
	EffectReprompt
	// EffectEstimate: всё собрано, можно считать
	EffectEstimate
	// EffectCancelled: пользователь отменил расчёт
	EffectCancelled
	// EffectIdle: диалог уже завершён, ответ не ждали
	EffectIdle
)

type Effect struct {
	Kind  EffectKind
	Field domain.State
	Err   error
}

// Step: функция переходов автомата: (сессия, ввод) -> (новая сессия, эффект).
// Никакого I/O; при EffectReprompt возвращается исходная сессия без изменений.
func Step(s domain.Session, in Input, rates domain.RateTable) (domain.Session, Effect) {
	switch in.Kind {
	case InputStart:
		next := s
		next.State = domain.StateTransport
		next.Transport = ""
		next.Brand = ""
		next.EngineSize = 0
		next.DistanceKm = 0
		return next, Effect{Kind: EffectPrompt, Field: domain.StateTransport}
	case InputCancel:
		next := s
		next.State = domain.StateDone
		return next, Effect{Kind: EffectCancelled}
	}

	if s.State == domain.StateDone {
		return s, Effect{Kind: EffectIdle}
	}

	if s.State == domain.StateTransport {
		t, err := domain.ParseTransport(in.Value)
		if err != nil {
			return s, reprompt(domain.StateTransport, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		}
		next := s
		next.Transport = t
		return advance(next, domain.StateTransport)
	}

	if _, ok := domain.LookupMode(s.Transport); !ok {
		// битая сессия (например, из старой версии в redis): начинаем с выбора транспорта
		next := s
		next.State = domain.StateTransport
		next.Transport = ""
		return next, reprompt(domain.StateTransport, fmt.Errorf("%w: transport %q", domain.ErrInvalidInput, s.Transport))
	}

	next := s
	switch s.State {
	case domain.StateBrand:
		brand := strings.TrimSpace(in.Value)
		if brand == "" {
			return s, reprompt(s.State, fmt.Errorf("%w: empty brand", domain.ErrInvalidInput))
		}
		next.Brand = rates.Canonical(brand)
	case domain.StateEngine:
		v, err := ParsePositive(in.Value)
		if err != nil {
			return s, reprompt(s.State, err)
		}
		next.EngineSize = v
	case domain.StateDistance:
		v, err := ParsePositive(in.Value)
		if err != nil {
			return s, reprompt(s.State, err)
		}
		next.DistanceKm = v
	default:
		return s, reprompt(s.State, fmt.Errorf("%w: unexpected state %q", domain.ErrInvalidInput, s.State))
	}
	return advance(next, s.State)
}

func advance(s domain.Session, answered domain.State) (domain.Session, Effect) {
	m, _ := domain.LookupMode(s.Transport)
	s.State = m.Next(answered)
	if s.State == domain.StateDone {
		return s, Effect{Kind: EffectEstimate}
	}
	return s, Effect{Kind: EffectPrompt, Field: s.State}
}

func reprompt(field domain.State, err error) Effect {
	return Effect{Kind: EffectReprompt, Field: field, Err: err}
}

// ParsePositive принимает "2.0" и "2,0"; ноль, отрицательные и NaN/Inf отклоняются.
func ParsePositive(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, raw)
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q must be a positive number", domain.ErrInvalidInput, raw)
	}
	return v, nil
}
