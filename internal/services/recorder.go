package services

import (
	"sync"

	"github.com/vytor/minimalpairs/internal/models"
)

// EventType names an outbound quiz event.
type EventType string

const (
	EventItemPresented  EventType = "itemPresented"
	EventAnswerResult   EventType = "answerResult"
	EventQueueExhausted EventType = "queueExhausted"
	EventStatsChanged   EventType = "statsChanged"
)

// Event is one recorded notification. Only the fields of its type are set.
type Event struct {
	Type        EventType              `json:"type"`
	Item        *models.Item           `json:"item,omitempty"`
	CorrectSlot models.Slot            `json:"correctSlot,omitempty"`
	IsCorrect   *bool                  `json:"isCorrect,omitempty"`
	Explanation string                 `json:"explanation,omitempty"`
	Reason      models.ExhaustedReason `json:"reason,omitempty"`
	Stats       *models.Stats          `json:"stats,omitempty"`
}

// Recorder is a Notifier that keeps every event in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) ItemPresented(item models.Item, correctSlot models.Slot) {
	r.add(Event{Type: EventItemPresented, Item: &item, CorrectSlot: correctSlot})
}

func (r *Recorder) AnswerResult(isCorrect bool, explanation string) {
	r.add(Event{Type: EventAnswerResult, IsCorrect: &isCorrect, Explanation: explanation})
}

func (r *Recorder) QueueExhausted(reason models.ExhaustedReason) {
	r.add(Event{Type: EventQueueExhausted, Reason: reason})
}

func (r *Recorder) StatsChanged(stats models.Stats) {
	s := stats.Clone()
	r.add(Event{Type: EventStatsChanged, Stats: &s})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Drain returns the recorded events and forgets them.
func (r *Recorder) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	if out == nil {
		out = []Event{}
	}
	return out
}

// Types lists the recorded event types in order.
func (r *Recorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// LastPresented returns the most recent ItemPresented event, if any.
func (r *Recorder) LastPresented() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == EventItemPresented {
			return r.events[i], true
		}
	}
	return Event{}, false
}
