package useCases

import (
	"context"
	"log/slog"
	"time"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
	"github.com/larriantoniy/tg_carbon_bot/internal/ports"
)

const defaultEstimateTimeout = 5 * time.Second

// Estimator считает выбросы. Машины, если задан api, считаются внешним сервисом;
// любая его ошибка превращается в запасную формулу, а не в ошибку диалога.
type Estimator struct {
	log     *slog.Logger
	rates   domain.RateTable
	api     ports.CarbonAPI
	timeout time.Duration
}

// NewEstimator: api может быть nil, тогда всё считается локально.
func NewEstimator(log *slog.Logger, rates domain.RateTable, api ports.CarbonAPI, timeout time.Duration) *Estimator {
	if timeout <= 0 {
		timeout = defaultEstimateTimeout
	}
	return &Estimator{
		log:     log,
		rates:   rates,
		api:     api,
		timeout: timeout,
	}
}

// Estimate возвращает ошибку только для невалидной поездки.
func (e *Estimator) Estimate(ctx context.Context, trip domain.Trip) (domain.Estimate, error) {
	if err := trip.Validate(); err != nil {
		return domain.Estimate{}, err
	}

	if trip.Transport == domain.TransportCar && e.api != nil {
		return e.estimateRemote(ctx, trip), nil
	}

	kg, err := domain.Calculate(trip, e.rates)
	if err != nil {
		return domain.Estimate{}, err
	}
	return domain.NewEstimate(kg, domain.SourceLocal), nil
}

func (e *Estimator) estimateRemote(ctx context.Context, trip domain.Trip) domain.Estimate {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := domain.NewVehicleEstimateRequest(trip, e.rates)
	kg, err := e.api.EstimateVehicle(ctx, req)
	if err == nil && kg >= 0 {
		return domain.NewEstimate(kg, domain.SourceRemote)
	}

	e.log.Warn("Remote estimate failed, using fallback formula",
		"brand", trip.Brand,
		"engine_size", trip.EngineSize,
		"distance_km", trip.DistanceKm,
		"carbon_kg", kg,
		"error", err,
	)
	return domain.NewEstimate(domain.FallbackCarKg(trip.EngineSize, trip.DistanceKm), domain.SourceFallback)
}
