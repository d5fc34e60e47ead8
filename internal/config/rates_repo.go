package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
	"github.com/larriantoniy/tg_carbon_bot/internal/ports"
)

var _ ports.RateRepo = (*YAMLRateRepo)(nil)

// YAMLRateRepo читает таблицу марок из YAML; без файла отдаёт встроенную.
//
//	default_factor: 0.2
//	brands:
//	  - name: Toyota
//	    factor: 0.192
//	    vehicle_model_id: "<vehicle model id>"
type YAMLRateRepo struct {
	path string
}

type rateFile struct {
	DefaultFactor float64            `yaml:"default_factor"`
	Brands        []domain.BrandRate `yaml:"brands"`
}

func NewYAMLRateRepo(path string) *YAMLRateRepo {
	return &YAMLRateRepo{path: path}
}

func (r *YAMLRateRepo) LoadRates(ctx context.Context) (domain.RateTable, error) {
	if r.path == "" {
		return domain.DefaultRateTable(), nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("read %s: %w", r.path, err)
	}

	var raw rateFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.RateTable{}, fmt.Errorf("unmarshal %s: %w", r.path, err)
	}
	if raw.DefaultFactor == 0 {
		raw.DefaultFactor = domain.DefaultBrandFactor
	}
	if len(raw.Brands) == 0 {
		return domain.RateTable{}, fmt.Errorf("%s: no brands listed", r.path)
	}

	table, err := domain.NewRateTable(raw.Brands, raw.DefaultFactor)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("%s: %w", r.path, err)
	}
	return table, nil
}
