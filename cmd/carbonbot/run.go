package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/larriantoniy/tg_carbon_bot/internal/adapters/carbonapi"
	"github.com/larriantoniy/tg_carbon_bot/internal/adapters/httpapi"
	"github.com/larriantoniy/tg_carbon_bot/internal/adapters/memstore"
	"github.com/larriantoniy/tg_carbon_bot/internal/adapters/redisstore"
	"github.com/larriantoniy/tg_carbon_bot/internal/adapters/tg"
	"github.com/larriantoniy/tg_carbon_bot/internal/config"
	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
	"github.com/larriantoniy/tg_carbon_bot/internal/ports"
	"github.com/larriantoniy/tg_carbon_bot/internal/useCases"
)

const sweepInterval = time.Minute

// newBot подменяется в тестах: настоящий клиент требует TDLib и сеть.
var newBot = func(cfg config.TelegramConfig, logger *slog.Logger) (ports.TelegramClient, error) {
	bot, err := tg.NewBotClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	return bot, nil
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Telegram bot (and the HTTP API if http.addr is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.ValidateTelegram(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, setupLogger(cfg.Env))
	},
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	rates, err := config.NewYAMLRateRepo(cfg.RatesPath).LoadRates(ctx)
	if err != nil {
		return fmt.Errorf("load rates: %w", err)
	}

	estimator := newEstimator(cfg, rates, logger)

	// остановка бота гасит и HTTP, и чистку хранилища
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// до старта runner'а ошибка должна остановить уже запущенные горутины группы
	abort := func(err error) error {
		cancel()
		_ = g.Wait()
		return err
	}

	store, err := newStore(gctx, g, cfg, logger)
	if err != nil {
		return abort(err)
	}

	bot, err := newBot(cfg.Telegram, logger.With("component", "tg"))
	if err != nil {
		return abort(fmt.Errorf("start telegram client: %w", err))
	}

	dialog := useCases.NewDialog(logger, bot, store, estimator, rates)
	runner := useCases.NewRunner(bot, dialog, logger)

	g.Go(func() error {
		defer cancel()
		return runner.Run(gctx)
	})

	if cfg.HTTP.Addr != "" {
		api := httpapi.New(estimator, logger.With("component", "http"))
		g.Go(func() error {
			return httpapi.Serve(gctx, cfg.HTTP.Addr, api.Router(), logger)
		})
	}

	err = g.Wait()
	logger.Info("exit")
	return err
}

// newEstimator подключает внешний сервис, только если задан ключ.
func newEstimator(cfg *config.AppConfig, rates domain.RateTable, logger *slog.Logger) *useCases.Estimator {
	var api ports.CarbonAPI
	if cfg.Estimate.Enabled() {
		api = carbonapi.New(cfg.Estimate, logger.With("component", "carbonapi"))
		logger.Info("remote car estimates enabled", "url", cfg.Estimate.URL, "timeout", cfg.Estimate.Timeout)
	}
	return useCases.NewEstimator(logger, rates, api, cfg.Estimate.Timeout)
}

// newStore выбирает хранилище сессий; для memory запускает чистку истёкших сессий.
func newStore(ctx context.Context, g *errgroup.Group, cfg *config.AppConfig, logger *slog.Logger) (ports.SessionStore, error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		store := redisstore.New(redisstore.NewClient(cfg.Redis), cfg.Redis.Prefix, cfg.Store.TTL)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		g.Go(func() error {
			<-ctx.Done()
			return store.Close()
		})
		logger.Info("session store: redis", "addr", cfg.Redis.Addr, "ttl", cfg.Store.TTL)
		return store, nil
	default:
		store := memstore.New(cfg.Store.TTL)
		g.Go(func() error {
			return store.Run(ctx, sweepInterval)
		})
		logger.Info("session store: memory", "ttl", cfg.Store.TTL)
		return store, nil
	}
}
