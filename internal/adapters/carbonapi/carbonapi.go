package carbonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/larriantoniy/tg_carbon_bot/internal/config"
	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

const retryDelay = 300 * time.Millisecond

// Client: HTTP-клиент внешнего сервиса оценки выбросов.
// Все ошибки оборачиваются в domain.ErrExternalService.
type Client struct {
	client  *http.Client
	logger  *slog.Logger
	baseURL string // https://www.carboninterface.com/api/v1/estimates
	apiKey  string
	retries int
}

func New(cfg config.EstimateConfig, logger *slog.Logger) *Client {
	return &Client{
		// таймаут задаёт ctx вызывающего, здесь только страховка от зависших соединений
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		retries: cfg.Retries,
	}
}

// retry повторяет fn, пока не кончатся попытки или ctx.
func retry(ctx context.Context, attempts int, sleep time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
	}
	return err
}

func (c *Client) EstimateVehicle(ctx context.Context, req domain.VehicleEstimateRequest) (float64, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("%w: marshal body: %w", domain.ErrExternalService, err)
	}

	var kg float64
	err = retry(ctx, c.retries+1, retryDelay, func() error {
		v, err := c.do(ctx, bodyBytes)
		if err != nil {
			c.logger.Warn("Estimate API attempt failed", "error", err)
			return err
		}
		kg = v
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrExternalService, err)
	}

	c.logger.Debug("Estimate API response", "carbon_kg", kg)
	return kg, nil
}

func (c *Client) do(ctx context.Context, body []byte) (float64, error) {
	// запрос собираем на каждую попытку: тело одноразовое
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	var er domain.VehicleEstimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	kg, ok := er.Kg()
	if !ok {
		return 0, fmt.Errorf("response has no carbon_kg")
	}
	if kg < 0 {
		return 0, fmt.Errorf("negative carbon_kg %v", kg)
	}
	return kg, nil
}
