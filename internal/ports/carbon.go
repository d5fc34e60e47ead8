package ports

import (
	"context"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

// CarbonAPI: внешний сервис оценки выбросов для машин.
type CarbonAPI interface {
	EstimateVehicle(ctx context.Context, req domain.VehicleEstimateRequest) (float64, error)
}
