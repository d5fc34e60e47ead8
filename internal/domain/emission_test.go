package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

func TestCalculate(t *testing.T) {
	rates := domain.DefaultRateTable()

	tests := []struct {
		name string
		trip domain.Trip
		kg   float64
		tier domain.Tier
		text string
	}{
		{
			name: "bicycle is always zero",
			trip: domain.Trip{Transport: domain.TransportBicycle, DistanceKm: 42},
			kg:   0,
			tier: domain.TierVeryEco,
			text: "0.00 kg",
		},
		{
			name: "toyota uses brand factor",
			trip: domain.Trip{Transport: domain.TransportCar, Brand: "Toyota", EngineSize: 2.0, DistanceKm: 100},
			kg:   38.4,
			tier: domain.TierModerate,
			text: "38.40 kg",
		},
		{
			name: "unknown brand uses default factor",
			trip: domain.Trip{Transport: domain.TransportCar, Brand: "Tesla", EngineSize: 2.0, DistanceKm: 100},
			kg:   40,
			tier: domain.TierModerate,
			text: "40.00 kg",
		},
		{
			name: "motorcycle engine in cc",
			trip: domain.Trip{Transport: domain.TransportMotorcycle, EngineSize: 500, DistanceKm: 50},
			kg:   500,
			tier: domain.TierConsiderAlternatives,
			text: "500.00 kg",
		},
		{
			name: "train",
			trip: domain.Trip{Transport: domain.TransportTrain, DistanceKm: 200},
			kg:   9,
			tier: domain.TierEcoConscious,
			text: "9.00 kg",
		},
		{
			name: "plane",
			trip: domain.Trip{Transport: domain.TransportPlane, DistanceKm: 1000},
			kg:   150,
			tier: domain.TierConsiderAlternatives,
			text: "150.00 kg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kg, err := domain.Calculate(tt.trip, rates)
			require.NoError(t, err)
			assert.InDelta(t, tt.kg, kg, 1e-9)

			est := domain.NewEstimate(kg, domain.SourceLocal)
			assert.Equal(t, tt.tier, est.Tier)
			assert.Contains(t, est.Text(), tt.text)
			assert.Contains(t, est.Text(), tt.tier.Label())
		})
	}
}

func TestCalculateEveryModeNonNegative(t *testing.T) {
	rates := domain.DefaultRateTable()

	for _, m := range domain.Modes() {
		for _, km := range []float64{0.5, 10, 250, 5000} {
			trip := domain.Trip{Transport: m.Transport, DistanceKm: km}
			if m.Requires(domain.StateBrand) {
				trip.Brand = "Volvo"
			}
			if m.Requires(domain.StateEngine) {
				trip.EngineSize = 1.6
			}

			kg, err := domain.Calculate(trip, rates)
			require.NoError(t, err, "%s %v km", m.Transport, km)
			assert.GreaterOrEqual(t, kg, 0.0)
			assert.Equal(t, domain.TierFor(kg), domain.NewEstimate(kg, domain.SourceLocal).Tier)
		}
	}
}

func TestTierThresholds(t *testing.T) {
	tests := []struct {
		kg   float64
		want domain.Tier
	}{
		{0, domain.TierVeryEco},
		{0.999, domain.TierVeryEco},
		{1, domain.TierEcoConscious},
		{9.99, domain.TierEcoConscious},
		{10, domain.TierModerate},
		{49.99, domain.TierModerate},
		{50, domain.TierConsiderAlternatives},
		{1e6, domain.TierConsiderAlternatives},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.kg), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.TierFor(tt.kg))
		})
	}

	assert.Equal(t, "consider more sustainable options", domain.TierConsiderAlternatives.String())
	assert.Equal(t, "very eco-friendly", domain.TierVeryEco.String())
}

func TestTripValidate(t *testing.T) {
	tests := []struct {
		name string
		trip domain.Trip
		want error
	}{
		{"unknown transport", domain.Trip{Transport: "rocket", DistanceKm: 1}, domain.ErrUnknownTransport},
		{"zero distance", domain.Trip{Transport: domain.TransportTrain}, domain.ErrInvalidTrip},
		{"negative distance", domain.Trip{Transport: domain.TransportTrain, DistanceKm: -3}, domain.ErrInvalidTrip},
		{"car without brand", domain.Trip{Transport: domain.TransportCar, EngineSize: 2, DistanceKm: 1}, domain.ErrInvalidTrip},
		{"motorcycle without engine", domain.Trip{Transport: domain.TransportMotorcycle, DistanceKm: 1}, domain.ErrInvalidTrip},
		{"plane ignores engine", domain.Trip{Transport: domain.TransportPlane, DistanceKm: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.trip.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFallbackCarKg(t *testing.T) {
	assert.InDelta(t, 460.0, domain.FallbackCarKg(2.0, 100), 1e-9)

	est := domain.NewEstimate(460, domain.SourceFallback)
	assert.Contains(t, est.Text(), "460.00 kg")
	assert.Contains(t, est.Text(), "approximate")
}

func TestModeNext(t *testing.T) {
	car, ok := domain.LookupMode(domain.TransportCar)
	require.True(t, ok)
	assert.Equal(t, domain.StateBrand, car.Next(domain.StateTransport))
	assert.Equal(t, domain.StateEngine, car.Next(domain.StateBrand))
	assert.Equal(t, domain.StateDistance, car.Next(domain.StateEngine))
	assert.Equal(t, domain.StateDone, car.Next(domain.StateDistance))

	moto, _ := domain.LookupMode(domain.TransportMotorcycle)
	assert.Equal(t, domain.StateEngine, moto.Next(domain.StateTransport))
	assert.False(t, moto.Requires(domain.StateBrand))

	for _, tr := range []domain.Transport{domain.TransportBicycle, domain.TransportTrain, domain.TransportPlane} {
		m, _ := domain.LookupMode(tr)
		assert.Equal(t, domain.StateDistance, m.Next(domain.StateTransport), tr)
	}
}

func TestParseTransport(t *testing.T) {
	got, err := domain.ParseTransport("  Car ")
	require.NoError(t, err)
	assert.Equal(t, domain.TransportCar, got)

	_, err = domain.ParseTransport("boat")
	assert.ErrorIs(t, err, domain.ErrUnknownTransport)
}
