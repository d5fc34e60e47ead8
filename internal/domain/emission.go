package domain

import (
	"fmt"
	"strings"
)

type Tier int

const (
	TierVeryEco Tier = iota
	TierEcoConscious
	TierModerate
	TierConsiderAlternatives
)

// TierFor: пороги: <1, <10, <50, всё остальное.
func TierFor(kg float64) Tier {
	switch {
	case kg < 1:
		return TierVeryEco
	case kg < 10:
		return TierEcoConscious
	case kg < 50:
		return TierModerate
	default:
		return TierConsiderAlternatives
	}
}

func (t Tier) String() string {
	switch t {
	case TierVeryEco:
		return "very eco-friendly"
	case TierEcoConscious:
		return "eco-conscious"
	case TierModerate:
		return "moderate"
	case TierConsiderAlternatives:
		return "consider more sustainable options"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Label: текст для пользователя.
func (t Tier) Label() string {
	switch t {
	case TierVeryEco:
		return "🚴 Very eco-friendly!"
	case TierEcoConscious:
		return "🟢 Eco-conscious travel."
	case TierModerate:
		return "🟡 Moderate emissions."
	default:
		return "🔴 Consider more sustainable options."
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Source: откуда взялась цифра.
type Source string

const (
	SourceLocal    Source = "local"
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Estimate struct {
	Kg     float64 `json:"kg"`
	Tier   Tier    `json:"tier"`
	Source Source  `json:"source"`
}

func NewEstimate(kg float64, src Source) Estimate {
	if kg < 0 {
		kg = 0
	}
	return Estimate{Kg: kg, Tier: TierFor(kg), Source: src}
}

// Text: итоговое сообщение, два знака после запятой.
func (e Estimate) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your estimated CO₂ emission is %.2f kg. %s", e.Kg, e.Tier.Label())
	if e.Source == SourceFallback {
		b.WriteString("\n(The estimate service is unavailable right now, this is an approximate value.)")
	}
	return b.String()
}

// Calculate считает выбросы локально по таблице режимов.
func Calculate(t Trip, rates RateTable) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	m, _ := LookupMode(t.Transport)
	return m.Calc(t, rates), nil
}

// FallbackCarKg: грубая линейная оценка, когда внешний сервис не ответил.
func FallbackCarKg(engineLiters, km float64) float64 {
	return engineLiters * FallbackCarFactor * km
}
