package services

import (
	"context"

	"github.com/vytor/minimalpairs/internal/models"
)

// Notifier receives the quiz's outbound events. Implementations are called
// while the service holds its lock and must not call back into the service.
type Notifier interface {
	ItemPresented(item models.Item, correctSlot models.Slot)
	AnswerResult(isCorrect bool, explanation string)
	QueueExhausted(reason models.ExhaustedReason)
	StatsChanged(stats models.Stats)
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) ItemPresented(models.Item, models.Slot) {}
func (NopNotifier) AnswerResult(bool, string)              {}
func (NopNotifier) QueueExhausted(models.ExhaustedReason)  {}
func (NopNotifier) StatsChanged(models.Stats)              {}

type notifierKey struct{}

// WithNotifier attaches a notifier to ctx. Events raised by a service call
// made with that context go to it in addition to the service's own notifier.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

func notifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok {
		return n
	}
	return nil
}

// fanout sends every event to each notifier in order.
type fanout []Notifier

func (f fanout) ItemPresented(item models.Item, slot models.Slot) {
	for _, n := range f {
		n.ItemPresented(item, slot)
	}
}

func (f fanout) AnswerResult(isCorrect bool, explanation string) {
	for _, n := range f {
		n.AnswerResult(isCorrect, explanation)
	}
}

func (f fanout) QueueExhausted(reason models.ExhaustedReason) {
	for _, n := range f {
		n.QueueExhausted(reason)
	}
}

func (f fanout) StatsChanged(stats models.Stats) {
	for _, n := range f {
		n.StatsChanged(stats.Clone())
	}
}
