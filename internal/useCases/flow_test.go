package useCases

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

func newFlowSession(t *testing.T) domain.Session {
	t.Helper()
	s := domain.NewSession(domain.SessionKey{ChatID: 1, UserID: 2}, time.Unix(0, 0))
	s, eff := Step(s, Input{Kind: InputStart}, domain.DefaultRateTable())
	require.Equal(t, EffectPrompt, eff.Kind)
	require.Equal(t, domain.StateTransport, eff.Field)
	return s
}

func answer(t *testing.T, s domain.Session, v string) (domain.Session, Effect) {
	t.Helper()
	return Step(s, Input{Kind: InputAnswer, Value: v}, domain.DefaultRateTable())
}

func TestStepPaths(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		fields  []domain.State // ожидаемые вопросы после каждого ответа, кроме последнего
		trip    domain.Trip
	}{
		{
			name:    "car visits every field",
			answers: []string{"car", "toyota", "2,0", "100"},
			fields:  []domain.State{domain.StateBrand, domain.StateEngine, domain.StateDistance},
			trip:    domain.Trip{Transport: domain.TransportCar, Brand: "Toyota", EngineSize: 2, DistanceKm: 100},
		},
		{
			name:    "motorcycle skips brand",
			answers: []string{"motorcycle", "500", "50"},
			fields:  []domain.State{domain.StateEngine, domain.StateDistance},
			trip:    domain.Trip{Transport: domain.TransportMotorcycle, EngineSize: 500, DistanceKm: 50},
		},
		{
			name:    "bicycle goes straight to distance",
			answers: []string{"bicycle", "12.5"},
			fields:  []domain.State{domain.StateDistance},
			trip:    domain.Trip{Transport: domain.TransportBicycle, DistanceKm: 12.5},
		},
		{
			name:    "train",
			answers: []string{"Train", "200"},
			fields:  []domain.State{domain.StateDistance},
			trip:    domain.Trip{Transport: domain.TransportTrain, DistanceKm: 200},
		},
		{
			name:    "plane",
			answers: []string{"plane", "800"},
			fields:  []domain.State{domain.StateDistance},
			trip:    domain.Trip{Transport: domain.TransportPlane, DistanceKm: 800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFlowSession(t)
			var eff Effect
			for i, a := range tt.answers {
				s, eff = answer(t, s, a)
				if i < len(tt.fields) {
					require.Equal(t, EffectPrompt, eff.Kind, "answer %q", a)
					require.Equal(t, tt.fields[i], eff.Field, "answer %q", a)
					require.Equal(t, tt.fields[i], s.State)
				}
			}
			require.Equal(t, EffectEstimate, eff.Kind)
			assert.Equal(t, domain.StateDone, s.State)
			if diff := cmp.Diff(tt.trip, s.Trip()); diff != "" {
				t.Errorf("trip mismatch (-want +got):\n%s", diff)
			}
			assert.NoError(t, s.Trip().Validate())
		})
	}
}

func TestStepInvalidInputKeepsState(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		bad   string
		field domain.State
	}{
		{"unknown transport", nil, "rocket", domain.StateTransport},
		{"empty brand", []string{"car"}, "   ", domain.StateBrand},
		{"non-numeric engine", []string{"car", "BMW"}, "big", domain.StateEngine},
		{"zero engine", []string{"motorcycle"}, "0", domain.StateEngine},
		{"non-numeric distance", []string{"train"}, "abc", domain.StateDistance},
		{"negative distance", []string{"plane"}, "-10", domain.StateDistance},
		{"infinite distance", []string{"plane"}, "Inf", domain.StateDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFlowSession(t)
			for _, a := range tt.setup {
				s, _ = answer(t, s, a)
			}

			next, eff := answer(t, s, tt.bad)
			assert.Equal(t, EffectReprompt, eff.Kind)
			assert.Equal(t, tt.field, eff.Field)
			assert.ErrorIs(t, eff.Err, domain.ErrInvalidInput)
			if diff := cmp.Diff(s, next); diff != "" {
				t.Errorf("session changed on invalid input (-before +after):\n%s", diff)
			}
		})
	}
}

func TestStepCancelFromEveryState(t *testing.T) {
	prefixes := [][]string{
		nil,
		{"car"},
		{"car", "Audi"},
		{"car", "Audi", "1.4"},
	}
	for _, p := range prefixes {
		s := newFlowSession(t)
		for _, a := range p {
			s, _ = answer(t, s, a)
		}
		next, eff := Step(s, Input{Kind: InputCancel}, domain.DefaultRateTable())
		assert.Equal(t, EffectCancelled, eff.Kind, "after %v", p)
		assert.Equal(t, domain.StateDone, next.State)
	}
}

func TestStepAfterDoneIsIdle(t *testing.T) {
	s := newFlowSession(t)
	s, _ = answer(t, s, "bicycle")
	s, eff := answer(t, s, "3")
	require.Equal(t, EffectEstimate, eff.Kind)

	_, eff = answer(t, s, "5")
	assert.Equal(t, EffectIdle, eff.Kind)
}

func TestStepStartResetsAnswers(t *testing.T) {
	s := newFlowSession(t)
	s, _ = answer(t, s, "car")
	s, _ = answer(t, s, "Kia")

	s, eff := Step(s, Input{Kind: InputStart}, domain.DefaultRateTable())
	assert.Equal(t, EffectPrompt, eff.Kind)
	assert.Equal(t, domain.StateTransport, s.State)
	assert.Empty(t, s.Transport)
	assert.Empty(t, s.Brand)
}

func TestStepRecoversCorruptSession(t *testing.T) {
	s := newFlowSession(t)
	s.State = domain.StateDistance
	s.Transport = "hovercraft"

	next, eff := answer(t, s, "10")
	assert.Equal(t, EffectReprompt, eff.Kind)
	assert.Equal(t, domain.StateTransport, eff.Field)
	assert.Equal(t, domain.StateTransport, next.State)
	assert.Empty(t, next.Transport)
}

func TestParsePositive(t *testing.T) {
	v, err := ParsePositive(" 2,5 ")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	for _, bad := range []string{"", "abc", "0", "-1", "NaN", "1e400"} {
		_, err := ParsePositive(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}
