package domain

import (
	"fmt"
	"math"
	"strings"
)

type Transport string

const (
	TransportPlane      Transport = "plane"
	TransportTrain      Transport = "train"
	TransportCar        Transport = "car"
	TransportMotorcycle Transport = "motorcycle"
	TransportBicycle    Transport = "bicycle"
)

// State: поле, которое диалог ждёт следующим.
type State string

const (
	StateTransport State = "transport"
	StateBrand     State = "brand"
	StateEngine    State = "engine"
	StateDistance  State = "distance"
	StateDone      State = "done"
)

// Коэффициенты, кг CO₂ на км (для мотоцикла на куб.см на км).
const (
	MotorcycleFactor  = 0.02
	TrainFactor       = 0.045
	PlaneFactor       = 0.15
	FallbackCarFactor = 2.3
)

const (
	EngineUnitLiters = "liters"
	EngineUnitCC     = "cc"
)

// Mode описывает вид транспорта: какие поля спрашиваем после выбора и как считаем.
// Добавить новый вид = добавить запись в modes, автомат диалога не меняется.
type Mode struct {
	Transport  Transport
	Title      string
	Steps      []State // всегда заканчивается StateDistance
	EngineUnit string
	Calc       func(t Trip, rates RateTable) float64
}

var modeOrder = []Transport{
	TransportPlane,
	TransportTrain,
	TransportCar,
	TransportMotorcycle,
	TransportBicycle,
}

var modes = map[Transport]Mode{
	TransportPlane: {
		Transport: TransportPlane,
		Title:     "Plane",
		Steps:     []State{StateDistance},
		Calc:      func(t Trip, _ RateTable) float64 { return PlaneFactor * t.DistanceKm },
	},
	TransportTrain: {
		Transport: TransportTrain,
		Title:     "Train",
		Steps:     []State{StateDistance},
		Calc:      func(t Trip, _ RateTable) float64 { return TrainFactor * t.DistanceKm },
	},
	TransportCar: {
		Transport:  TransportCar,
		Title:      "Car",
		Steps:      []State{StateBrand, StateEngine, StateDistance},
		EngineUnit: EngineUnitLiters,
		Calc: func(t Trip, rates RateTable) float64 {
			return rates.Factor(t.Brand) * t.EngineSize * t.DistanceKm
		},
	},
	TransportMotorcycle: {
		Transport:  TransportMotorcycle,
		Title:      "Motorcycle",
		Steps:      []State{StateEngine, StateDistance},
		EngineUnit: EngineUnitCC,
		Calc: func(t Trip, _ RateTable) float64 {
			return MotorcycleFactor * t.EngineSize * t.DistanceKm
		},
	},
	TransportBicycle: {
		Transport: TransportBicycle,
		Title:     "Bicycle",
		Steps:     []State{StateDistance},
		Calc:      func(Trip, RateTable) float64 { return 0 },
	},
}

// Modes возвращает виды транспорта в порядке меню.
func Modes() []Mode {
	out := make([]Mode, 0, len(modeOrder))
	for _, t := range modeOrder {
		out = append(out, modes[t])
	}
	return out
}

func LookupMode(t Transport) (Mode, bool) {
	m, ok := modes[t]
	return m, ok
}

// ParseTransport принимает callback data ("car") и ручной ввод ("Car ").
func ParseTransport(s string) (Transport, error) {
	t := Transport(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := modes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTransport, s)
	}
	return t, nil
}

// Next возвращает следующее ожидаемое поле после after.
func (m Mode) Next(after State) State {
	if after == StateTransport {
		if len(m.Steps) == 0 {
			return StateDone
		}
		return m.Steps[0]
	}
	for i, s := range m.Steps {
		if s == after {
			if i+1 < len(m.Steps) {
				return m.Steps[i+1]
			}
			return StateDone
		}
	}
	return StateDone
}

func (m Mode) Requires(s State) bool {
	for _, step := range m.Steps {
		if step == s {
			return true
		}
	}
	return false
}

// Trip: всё, что нужно для расчёта.
type Trip struct {
	Transport  Transport `json:"transport"`
	Brand      string    `json:"brand,omitempty"`
	EngineSize float64   `json:"engine_size,omitempty"`
	DistanceKm float64   `json:"distance_km"`
}

// Validate проверяет, что заполнены все поля, нужные выбранному виду транспорта.
func (t Trip) Validate() error {
	m, ok := LookupMode(t.Transport)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransport, t.Transport)
	}
	if !positive(t.DistanceKm) {
		return fmt.Errorf("%w: distance must be a positive number of km", ErrInvalidTrip)
	}
	if m.Requires(StateBrand) && strings.TrimSpace(t.Brand) == "" {
		return fmt.Errorf("%w: brand is required for %s", ErrInvalidTrip, t.Transport)
	}
	if m.Requires(StateEngine) && !positive(t.EngineSize) {
		return fmt.Errorf("%w: engine size in %s is required for %s", ErrInvalidTrip, m.EngineUnit, t.Transport)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
