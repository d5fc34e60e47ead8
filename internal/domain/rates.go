package domain

import (
	"fmt"
	"strings"
)

// DefaultBrandFactor используется для марок, которых нет в таблице.
const DefaultBrandFactor = 0.2

// BrandRate: коэффициент выбросов марки (кг CO₂ на литр объёма двигателя на км).
type BrandRate struct {
	Name           string  `yaml:"name" json:"name"`
	Factor         float64 `yaml:"factor" json:"factor"`
	VehicleModelID string  `yaml:"vehicle_model_id,omitempty" json:"vehicle_model_id,omitempty"`
}

// RateTable неизменяема после создания, её можно читать из любых горутин.
type RateTable struct {
	rates         []BrandRate
	index         map[string]int
	defaultFactor float64
}

var builtinRates = []BrandRate{
	{Name: "Toyota", Factor: 0.192},
	{Name: "Honda", Factor: 0.185},
	{Name: "Ford", Factor: 0.198},
	{Name: "Chevrolet", Factor: 0.200},
	{Name: "Nissan", Factor: 0.188},
	{Name: "Volkswagen", Factor: 0.190},
	{Name: "Hyundai", Factor: 0.180},
	{Name: "Kia", Factor: 0.178},
	{Name: "Mercedes-Benz", Factor: 0.220},
	{Name: "BMW", Factor: 0.210},
	{Name: "Audi", Factor: 0.205},
	{Name: "Peugeot", Factor: 0.180},
	{Name: "Fiat", Factor: 0.170},
	{Name: "Renault", Factor: 0.160},
	{Name: "Skoda", Factor: 0.175},
	{Name: "Mazda", Factor: 0.182},
	{Name: "Mitsubishi", Factor: 0.195},
	{Name: "Jeep", Factor: 0.210},
	{Name: "Subaru", Factor: 0.200},
	{Name: "Volvo", Factor: 0.205},
}

// DefaultRateTable возвращает встроенную таблицу на 20 марок.
func DefaultRateTable() RateTable {
	t, err := NewRateTable(builtinRates, DefaultBrandFactor)
	if err != nil {
		panic(err)
	}
	return t
}

// NewRateTable копирует rates; порядок сохраняется (он же порядок кнопок в меню).
func NewRateTable(rates []BrandRate, defaultFactor float64) (RateTable, error) {
	if defaultFactor <= 0 {
		return RateTable{}, fmt.Errorf("default factor must be positive, got %v", defaultFactor)
	}

	t := RateTable{
		rates:         make([]BrandRate, 0, len(rates)),
		index:         make(map[string]int, len(rates)),
		defaultFactor: defaultFactor,
	}
	for _, r := range rates {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return RateTable{}, fmt.Errorf("brand with empty name")
		}
		if r.Factor <= 0 {
			return RateTable{}, fmt.Errorf("brand %q: factor must be positive, got %v", name, r.Factor)
		}
		key := strings.ToLower(name)
		if _, dup := t.index[key]; dup {
			return RateTable{}, fmt.Errorf("brand %q listed twice", name)
		}
		r.Name = name
		t.index[key] = len(t.rates)
		t.rates = append(t.rates, r)
	}
	return t, nil
}

// Lookup ищет марку без учёта регистра.
func (t RateTable) Lookup(brand string) (BrandRate, bool) {
	i, ok := t.index[strings.ToLower(strings.TrimSpace(brand))]
	if !ok {
		return BrandRate{}, false
	}
	return t.rates[i], true
}

// Factor never fails: unknown brands get the default factor.
func (t RateTable) Factor(brand string) float64 {
	if r, ok := t.Lookup(brand); ok {
		return r.Factor
	}
	return t.DefaultFactor()
}

func (t RateTable) DefaultFactor() float64 {
	if t.defaultFactor <= 0 {
		return DefaultBrandFactor
	}
	return t.defaultFactor
}

// Canonical приводит ввод к написанию из таблицы ("toyota" -> "Toyota").
func (t RateTable) Canonical(brand string) string {
	if r, ok := t.Lookup(brand); ok {
		return r.Name
	}
	return strings.TrimSpace(brand)
}

func (t RateTable) Brands() []string {
	out := make([]string, 0, len(t.rates))
	for _, r := range t.rates {
		out = append(out, r.Name)
	}
	return out
}
