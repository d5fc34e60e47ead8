package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

// Estimator: то, что нужно HTTP-слою от расчёта.
type Estimator interface {
	Estimate(ctx context.Context, trip domain.Trip) (domain.Estimate, error)
}

type Handler struct {
	estimator Estimator
	log       *slog.Logger
}

func New(estimator Estimator, log *slog.Logger) *Handler {
	return &Handler{estimator: estimator, log: log}
}

// Router: GET /healthz, POST /v1/estimate.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.health)
	r.Post("/v1/estimate", h.estimate)
	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type estimateResponse struct {
	domain.Estimate
	Text string `json:"text"`
}

func (h *Handler) estimate(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&trip); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	est, err := h.estimator.Estimate(r.Context(), trip)
	switch {
	case errors.Is(err, domain.ErrUnknownTransport), errors.Is(err, domain.ErrInvalidTrip):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.Error("Estimate", "request_id", middleware.GetReqID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "estimate failed")
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{Estimate: est, Text: est.Text()})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve поднимает сервер на addr и гасит его при отмене ctx.
func Serve(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
