package domain

const (
	EstimateTypeVehicle = "vehicle"
	DistanceUnitKm      = "km"
	FuelSourcePetrol    = "petrol"
)

// VehicleEstimateRequest: тело POST во внешний сервис оценки.
type VehicleEstimateRequest struct {
	Type           string  `json:"type"`
	DistanceUnit   string  `json:"distance_unit"`
	DistanceValue  float64 `json:"distance_value"`
	VehicleModelID string  `json:"vehicle_model_id"`
	EngineSize     float64 `json:"engine_size"`
	FuelSource     string  `json:"fuel_source"`
}

// NewVehicleEstimateRequest собирает запрос для машины; топливо всегда бензин.
func NewVehicleEstimateRequest(t Trip, rates RateTable) VehicleEstimateRequest {
	var modelID string
	if r, ok := rates.Lookup(t.Brand); ok {
		modelID = r.VehicleModelID
	}
	return VehicleEstimateRequest{
		Type:           EstimateTypeVehicle,
		DistanceUnit:   DistanceUnitKm,
		DistanceValue:  t.DistanceKm,
		VehicleModelID: modelID,
		EngineSize:     t.EngineSize,
		FuelSource:     FuelSourcePetrol,
	}
}

// VehicleEstimateResponse: carbon_kg бывает в корне или в data.attributes.
type VehicleEstimateResponse struct {
	CarbonKg *float64 `json:"carbon_kg"`
	Data     *struct {
		Attributes struct {
			CarbonKg *float64 `json:"carbon_kg"`
		} `json:"attributes"`
	} `json:"data"`
}

func (r VehicleEstimateResponse) Kg() (float64, bool) {
	if r.CarbonKg != nil {
		return *r.CarbonKg, true
	}
	if r.Data != nil && r.Data.Attributes.CarbonKg != nil {
		return *r.Data.Attributes.CarbonKg, true
	}
	return 0, false
}
