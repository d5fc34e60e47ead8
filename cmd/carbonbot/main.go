package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "carbonbot",
	Short:         "Telegram bot that estimates the CO₂ footprint of a trip",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $CONFIG_PATH)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(estimateCmd)
}

func main() {
	// .env не обязателен: в проде секреты приходят из окружения
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == envDev {
		level = slog.LevelDebug
	}

	return slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	)
}
