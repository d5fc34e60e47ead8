package useCases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
	"github.com/larriantoniy/tg_carbon_bot/internal/ports"
)

// Dialog связывает хранилище сессий, автомат Step, расчёт и отправку ответов.
type Dialog struct {
	log       *slog.Logger
	tg        ports.TelegramClient
	store     ports.SessionStore
	estimator *Estimator
	rates     domain.RateTable
	now       func() time.Time
}

func NewDialog(
	log *slog.Logger,
	tg ports.TelegramClient,
	store ports.SessionStore,
	estimator *Estimator,
	rates domain.RateTable,
) *Dialog {
	return &Dialog{
		log:       log,
		tg:        tg,
		store:     store,
		estimator: estimator,
		rates:     rates,
		now:       time.Now,
	}
}

// Handle обрабатывает одно событие. Вызовы для одной сессии должны идти последовательно (см. Runner).
func (d *Dialog) Handle(ctx context.Context, upd domain.Update) error {
	if upd.Kind == domain.UpdateCallback {
		if err := d.tg.AnswerCallback(upd.CallbackID); err != nil {
			// не фейлим диалог из-за косметики
			d.log.Warn("AnswerCallback failed", "chat_id", upd.ChatID, "error", err)
		}
	}

	if cmd, ok := upd.Command(); ok {
		return d.handleCommand(ctx, upd, cmd)
	}

	s, err := d.store.Get(ctx, upd.Key())
	if errors.Is(err, domain.ErrSessionNotFound) {
		return d.send(upd.ChatID, domain.Reply{Text: noSessionText})
	}
	if err != nil {
		d.log.Error("SessionStore.Get", "key", upd.Key().String(), "error", err)
		_ = d.send(upd.ChatID, domain.Reply{Text: failureText})
		return err
	}

	return d.answer(ctx, upd, s)
}

func (d *Dialog) handleCommand(ctx context.Context, upd domain.Update, cmd string) error {
	switch cmd {
	case "start":
		s := domain.NewSession(upd.Key(), d.now())
		s, eff := Step(s, Input{Kind: InputStart}, d.rates)
		if err := d.store.Save(ctx, s); err != nil {
			d.log.Error("SessionStore.Save", "session", s.ID, "error", err)
			_ = d.send(upd.ChatID, domain.Reply{Text: failureText})
			return err
		}
		d.log.Info("Session started", "session", s.ID, "chat_id", s.ChatID, "user_id", s.UserID)
		return d.send(upd.ChatID, promptFor(s, eff.Field, d.rates))

	case "cancel", "reset":
		s, err := d.store.Get(ctx, upd.Key())
		if errors.Is(err, domain.ErrSessionNotFound) {
			return d.send(upd.ChatID, domain.Reply{Text: noSessionText})
		}
		if err != nil {
			d.log.Error("SessionStore.Get", "key", upd.Key().String(), "error", err)
			return d.send(upd.ChatID, domain.Reply{Text: failureText})
		}
		s, _ = Step(s, Input{Kind: InputCancel}, d.rates)
		d.finish(ctx, s, "cancelled")
		return d.send(upd.ChatID, domain.Reply{Text: cancelledText})

	default:
		// /help и всё незнакомое
		return d.send(upd.ChatID, domain.Reply{Text: helpText})
	}
}

func (d *Dialog) answer(ctx context.Context, upd domain.Update, s domain.Session) error {
	log := d.log.With("session", s.ID)

	next, eff := Step(s, Input{Kind: InputAnswer, Value: upd.Text}, d.rates)
	next.UpdatedAt = d.now()

	switch eff.Kind {
	case EffectReprompt:
		log.Debug("Input rejected", "state", s.State, "input", upd.Text, "error", eff.Err)
		if next.State != s.State {
			// автомат сбросил битую сессию: сохраняем сброс
			if err := d.store.Save(ctx, next); err != nil {
				log.Error("SessionStore.Save", "error", err)
			}
		}
		return d.send(upd.ChatID, repromptFor(next, eff.Field, d.rates))

	case EffectPrompt:
		if err := d.store.Save(ctx, next); err != nil {
			log.Error("SessionStore.Save", "error", err)
			_ = d.send(upd.ChatID, domain.Reply{Text: failureText})
			return err
		}
		log.Debug("Answer accepted", "state", s.State, "next", next.State)
		return d.respond(upd, promptFor(next, eff.Field, d.rates))

	case EffectEstimate:
		est, err := d.estimator.Estimate(ctx, next.Trip())
		d.finish(ctx, next, "estimated")
		if err != nil {
			log.Error("Estimate", "trip", fmt.Sprintf("%+v", next.Trip()), "error", err)
			return d.send(upd.ChatID, domain.Reply{Text: failureText})
		}
		log.Info("Estimate sent",
			"transport", next.Transport,
			"kg", est.Kg,
			"tier", est.Tier.String(),
			"source", est.Source,
		)
		return d.send(upd.ChatID, domain.Reply{Text: est.Text()})

	case EffectCancelled:
		d.finish(ctx, next, "cancelled")
		return d.send(upd.ChatID, domain.Reply{Text: cancelledText})

	default:
		d.finish(ctx, next, "idle")
		return d.send(upd.ChatID, domain.Reply{Text: noSessionText})
	}
}

// finish удаляет завершённую сессию; ошибка хранилища не критична, TTL дочистит.
func (d *Dialog) finish(ctx context.Context, s domain.Session, reason string) {
	if err := d.store.Delete(ctx, s.Key()); err != nil {
		d.log.Warn("SessionStore.Delete", "session", s.ID, "error", err)
	}
	d.log.Info("Session finished", "session", s.ID, "reason", reason)
}

// respond редактирует меню, если ответ пришёл кнопкой, иначе шлёт новое сообщение.
func (d *Dialog) respond(upd domain.Update, r domain.Reply) error {
	if upd.Kind == domain.UpdateCallback && upd.MessageID != 0 {
		err := d.tg.EditMessage(upd.ChatID, upd.MessageID, r)
		if err == nil {
			return nil
		}
		d.log.Warn("EditMessage failed, sending new message", "chat_id", upd.ChatID, "error", err)
	}
	return d.send(upd.ChatID, r)
}

func (d *Dialog) send(chatID int64, r domain.Reply) error {
	if err := d.tg.SendMessage(chatID, r); err != nil {
		d.log.Error("SendMessage", "chat_id", chatID, "error", err)
		return err
	}
	return nil
}
