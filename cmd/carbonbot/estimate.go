package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/larriantoniy/tg_carbon_bot/internal/config"
	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

var (
	tripTransport string
	tripBrand     string
	tripEngine    float64
	tripKm        float64
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a single trip without starting the bot",
	Example: `  carbonbot estimate --transport car --brand Toyota --engine 2.0 --km 100
  carbonbot estimate --transport motorcycle --engine 500 --km 50
  carbonbot estimate --transport train --km 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger := setupLogger(cfg.Env)

		rates, err := config.NewYAMLRateRepo(cfg.RatesPath).LoadRates(cmd.Context())
		if err != nil {
			return fmt.Errorf("load rates: %w", err)
		}

		transport, err := domain.ParseTransport(tripTransport)
		if err != nil {
			return err
		}
		trip := domain.Trip{
			Transport:  transport,
			Brand:      rates.Canonical(tripBrand),
			EngineSize: tripEngine,
			DistanceKm: tripKm,
		}

		est, err := newEstimator(cfg, rates, logger).Estimate(cmd.Context(), trip)
		if err != nil {
			return err
		}
		return printEstimate(cmd.OutOrStdout(), est)
	},
}

func init() {
	estimateCmd.Flags().StringVar(&tripTransport, "transport", "", "plane, train, car, motorcycle or bicycle")
	estimateCmd.Flags().StringVar(&tripBrand, "brand", "", "car brand (car only)")
	estimateCmd.Flags().Float64Var(&tripEngine, "engine", 0, "engine size: liters for car, cc for motorcycle")
	estimateCmd.Flags().Float64Var(&tripKm, "km", 0, "distance in km")
	_ = estimateCmd.MarkFlagRequired("transport")
	_ = estimateCmd.MarkFlagRequired("km")
}

func printEstimate(w io.Writer, est domain.Estimate) error {
	_, err := fmt.Fprintln(w, est.Text())
	return err
}
