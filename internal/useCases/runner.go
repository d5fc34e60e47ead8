package useCases

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
	"github.com/larriantoniy/tg_carbon_bot/internal/ports"
)

type UpdateHandler interface {
	Handle(ctx context.Context, upd domain.Update) error
}

// Runner читает события бота и раздаёт их обработчику.
// События одной сессии обрабатываются строго по очереди, разных сессий параллельно.
type Runner struct {
	tg      ports.TelegramClient
	handler UpdateHandler
	log     *slog.Logger

	mu    sync.Mutex
	boxes map[domain.SessionKey]*mailbox
	wg    sync.WaitGroup
}

type mailbox struct {
	queue []domain.Update
}

func NewRunner(tg ports.TelegramClient, handler UpdateHandler, log *slog.Logger) *Runner {
	return &Runner{
		tg:      tg,
		handler: handler,
		log:     log,
		boxes:   make(map[domain.SessionKey]*mailbox),
	}
}

// Run блокируется до отмены ctx или закрытия канала обновлений,
// затем ждёт обработчики, которые ещё работают, и закрывает клиента.
func (r *Runner) Run(ctx context.Context) error {
	defer r.tg.Close()

	updates, err := r.tg.Listen()
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer r.wg.Wait()

	r.log.Info("runner started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info("runner stopped", "reason", ctx.Err())
			return nil
		case upd, ok := <-updates:
			if !ok {
				r.log.Info("updates channel closed")
				return nil
			}
			r.dispatch(ctx, upd)
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, upd domain.Update) {
	key := upd.Key()

	r.mu.Lock()
	box, running := r.boxes[key]
	if !running {
		box = &mailbox{}
		r.boxes[key] = box
	}
	box.queue = append(box.queue, upd)
	r.mu.Unlock()

	if running {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.drain(ctx, key, box)
	}()
}

func (r *Runner) drain(ctx context.Context, key domain.SessionKey, box *mailbox) {
	for {
		r.mu.Lock()
		if len(box.queue) == 0 {
			delete(r.boxes, key)
			r.mu.Unlock()
			return
		}
		upd := box.queue[0]
		box.queue = box.queue[1:]
		r.mu.Unlock()

		r.handle(ctx, key, upd)
	}
}

// handle изолирует панику одного обработчика: очередь и остальные сессии живут дальше.
func (r *Runner) handle(ctx context.Context, key domain.SessionKey, upd domain.Update) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("handler panicked", "key", key.String(), "panic", p, "stack", string(debug.Stack()))
		}
	}()

	if err := r.handler.Handle(ctx, upd); err != nil {
		r.log.Error("handle update failed", "key", key.String(), "error", err)
	}
}
