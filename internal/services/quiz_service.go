package services

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/minimalpairs/internal/errors"
	"github.com/vytor/minimalpairs/internal/items"
	"github.com/vytor/minimalpairs/internal/leitner"
	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
	"github.com/vytor/minimalpairs/internal/quiz"
	"github.com/vytor/minimalpairs/internal/repository"
)

// QuizService is the inbound side of the quiz: the actions a presentation
// layer can take on behalf of the learner.
type QuizService interface {
	RequestNext(ctx context.Context) (*CurrentItem, error)
	Answer(ctx context.Context, slot models.Slot) (*AnswerOutcome, error)
	ToggleCategory(ctx context.Context, category string, enabled bool) error
	ContinueReviewing(ctx context.Context) (*CurrentItem, error)
	ResetAllProgress(ctx context.Context) (*CurrentItem, error)
	Snapshot(ctx context.Context) Snapshot
	Categories(ctx context.Context) []CategoryInfo
	History(ctx context.Context, limit int) ([]models.AnswerRecord, error)
}

// CurrentItem is the item on display. CorrectSlot is only filled in once
// the item has been answered.
type CurrentItem struct {
	ID          string          `json:"id"`
	Category    models.Category `json:"category"`
	Name        string          `json:"categoryName"`
	OptionA     string          `json:"optionA"`
	OptionB     string          `json:"optionB"`
	Highlight   []string        `json:"highlight"`
	Answered    bool            `json:"answered"`
	CorrectSlot models.Slot     `json:"correctSlot,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
}

// AnswerOutcome is the result of an answer. Accepted is false when there was
// nothing to answer.
type AnswerOutcome struct {
	Accepted    bool        `json:"accepted"`
	IsCorrect   bool        `json:"isCorrect"`
	CorrectSlot models.Slot `json:"correctSlot,omitempty"`
	Explanation string      `json:"explanation,omitempty"`
	BoxBefore   int         `json:"boxBefore,omitempty"`
	BoxAfter    int         `json:"boxAfter,omitempty"`
}

// Snapshot is a read-only view of the quiz state.
type Snapshot struct {
	SessionNumber    int                    `json:"sessionNumber"`
	Stats            models.Stats           `json:"stats"`
	Accuracy         int                    `json:"accuracy"`
	BoxCounts        [models.MaxBox]int     `json:"boxCounts"`
	Answered         int                    `json:"answered"`
	Total            int                    `json:"total"`
	Remaining        int                    `json:"remaining"`
	ActiveCategories []models.Category      `json:"activeCategories"`
	Current          *CurrentItem           `json:"current"`
	Exhausted        models.ExhaustedReason `json:"exhausted,omitempty"`
}

// CategoryInfo describes one category for a category picker.
type CategoryInfo struct {
	Category models.Category `json:"category"`
	Name     string          `json:"name"`
	Active   bool            `json:"active"`
	Items    int             `json:"items"`
	Correct  int             `json:"correct"`
	Total    int             `json:"total"`
	Accuracy int             `json:"accuracy"`
}

type quizService struct {
	mu        sync.Mutex
	state     *quiz.State
	rng       leitner.Rand
	progress  repository.ProgressRepository
	history   repository.HistoryRepository
	notifier  Notifier
	exhausted models.ExhaustedReason
	now       func() time.Time
}

// NewQuizService restores saved progress and builds the first queue. Missing
// or unreadable progress starts the learner from scratch. history and
// notifier may be nil.
func NewQuizService(ctx context.Context, store *items.Store, progress repository.ProgressRepository, history repository.HistoryRepository, rng leitner.Rand, notifier Notifier) QuizService {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	saved, err := progress.Load(ctx)
	if err != nil {
		log.Warn("failed to load saved progress, starting fresh: %v", err)
		saved = nil
	}
	if saved == nil {
		log.Info("no saved progress found")
	}

	if notifier == nil {
		notifier = NopNotifier{}
	}

	st := quiz.NewState(store, saved)
	st.Rebuild(rng)

	log.Info("quiz ready: items=%d, session=%d, active_categories=%d, queued=%d",
		store.Len(), st.SessionNumber, len(st.Active), len(st.Queue))

	return &quizService{
		state:    st,
		rng:      rng,
		progress: progress,
		history:  history,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *quizService) notify(ctx context.Context) Notifier {
	if n := notifierFromContext(ctx); n != nil {
		return fanout{s.notifier, n}
	}
	return s.notifier
}

func (s *quizService) RequestNext(ctx context.Context) (*CurrentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.presentNext(ctx), nil
}

// presentNext advances to the next queued item or reports why there is none.
func (s *quizService) presentNext(ctx context.Context) *CurrentItem {
	log := logger.FromContext(ctx).WithPrefix("quiz")
	n := s.notify(ctx)

	item := s.state.Next()
	if item == nil {
		s.state.Current = nil
		s.exhausted = s.state.ExhaustedReason()
		log.Debug("queue exhausted: reason=%s, session=%d", s.exhausted, s.state.SessionNumber)
		n.QueueExhausted(s.exhausted)
		return nil
	}

	p := quiz.Present(*item, s.rng)
	s.state.Current = &p
	s.exhausted = ""
	log.Debug("presenting item: id=%s, category=%s, correct_slot=%s", item.ID, item.Category, p.CorrectSlot)
	n.ItemPresented(p.Item, p.CorrectSlot)
	return s.current()
}

func (s *quizService) Answer(ctx context.Context, slot models.Slot) (*AnswerOutcome, error) {
	if !slot.Valid() {
		return nil, errors.NewValidationError("slot", "must be A or B")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("quiz")

	cur := s.state.Current
	if cur == nil || s.state.IsAnswered(cur.Item.ID) {
		log.Debug("ignoring answer: nothing to answer")
		return &AnswerOutcome{Accepted: false}, nil
	}

	out := quiz.Submit(s.state, *cur, slot)
	log.Debug("answer recorded: id=%s, correct=%t, box=%d->%d", cur.Item.ID, out.IsCorrect, out.Before.Box, out.After.Box)

	s.save(ctx)
	s.record(ctx, models.AnswerRecord{
		ItemID:     cur.Item.ID,
		Category:   cur.Item.Category,
		Correct:    out.IsCorrect,
		BoxBefore:  out.Before.Box,
		BoxAfter:   out.After.Box,
		Session:    s.state.SessionNumber,
		AnsweredAt: s.now().UTC(),
	})

	n := s.notify(ctx)
	n.AnswerResult(out.IsCorrect, cur.Item.Explanation)
	n.StatsChanged(s.state.Stats.Clone())

	return &AnswerOutcome{
		Accepted:    true,
		IsCorrect:   out.IsCorrect,
		CorrectSlot: cur.CorrectSlot,
		Explanation: cur.Item.Explanation,
		BoxBefore:   out.Before.Box,
		BoxAfter:    out.After.Box,
	}, nil
}

func (s *quizService) ToggleCategory(ctx context.Context, category string, enabled bool) error {
	c, err := models.ParseCategory(category)
	if err != nil {
		return errors.NewValidationError("category", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("quiz")

	active := s.state.Active.Clone()
	if enabled {
		active[c] = struct{}{}
	} else {
		delete(active, c)
	}

	advance := s.state.ChangeCategories(active, s.rng)
	log.Info("category toggled: category=%s, enabled=%t, active=%d, queued=%d", c, enabled, len(active), len(s.state.Queue))
	s.save(ctx)

	switch {
	case advance:
		s.presentNext(ctx)
	case s.state.Current == nil:
		s.exhausted = ""
		if len(s.state.Queue) == 0 {
			s.exhausted = s.state.ExhaustedReason()
		}
	}
	return nil
}

func (s *quizService) ContinueReviewing(ctx context.Context) (*CurrentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.StartNewSession(s.rng)
	logger.FromContext(ctx).WithPrefix("quiz").Info("starting session %d: queued=%d", s.state.SessionNumber, len(s.state.Queue))
	s.save(ctx)

	return s.presentNext(ctx), nil
}

func (s *quizService) ResetAllProgress(ctx context.Context) (*CurrentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("quiz")

	s.state.ResetProgress(s.rng)
	log.Info("progress reset: queued=%d", len(s.state.Queue))
	s.save(ctx)

	if s.history != nil {
		if err := s.history.Clear(ctx); err != nil {
			log.Warn("failed to clear answer history: %v", err)
		}
	}

	s.notify(ctx).StatsChanged(s.state.Stats.Clone())
	return s.presentNext(ctx), nil
}

func (s *quizService) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answered, total := s.state.SessionProgress()
	return Snapshot{
		SessionNumber:    s.state.SessionNumber,
		Stats:            s.state.Stats.Clone(),
		Accuracy:         s.state.Stats.Accuracy(),
		BoxCounts:        s.state.BoxCounts(),
		Answered:         answered,
		Total:            total,
		Remaining:        len(s.state.Queue),
		ActiveCategories: s.state.Active.List(),
		Current:          s.current(),
		Exhausted:        s.exhausted,
	}
}

func (s *quizService) Categories(ctx context.Context) []CategoryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.state.Store.CountByCategory()
	out := make([]CategoryInfo, 0, len(models.Categories))
	for _, c := range models.Categories {
		cs := s.state.Stats.CategoryStats[c]
		out = append(out, CategoryInfo{
			Category: c,
			Name:     c.DisplayName(),
			Active:   s.state.Active.Has(c),
			Items:    counts[c],
			Correct:  cs.Correct,
			Total:    cs.Total,
			Accuracy: cs.Accuracy(),
		})
	}
	return out
}

func (s *quizService) History(ctx context.Context, limit int) ([]models.AnswerRecord, error) {
	if limit < 1 {
		return nil, errors.NewValidationError("limit", "must be positive")
	}
	if s.history == nil {
		return []models.AnswerRecord{}, nil
	}

	recs, err := s.history.Recent(ctx, limit)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("quiz").Error("failed to load answer history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return recs, nil
}

// current describes the presentation on display, or nil. Callers hold s.mu.
func (s *quizService) current() *CurrentItem {
	p := s.state.Current
	if p == nil {
		return nil
	}
	a, b := p.Options()
	cur := &CurrentItem{
		ID:        p.Item.ID,
		Category:  p.Item.Category,
		Name:      p.Item.Category.DisplayName(),
		OptionA:   a,
		OptionB:   b,
		Highlight: p.Item.Highlight,
		Answered:  s.state.IsAnswered(p.Item.ID),
	}
	if cur.Answered {
		cur.CorrectSlot = p.CorrectSlot
		cur.Explanation = p.Item.Explanation
	}
	return cur
}

// save persists the progress. A failed save is logged and otherwise ignored;
// the in-memory state stays authoritative.
func (s *quizService) save(ctx context.Context) {
	if err := s.progress.Save(ctx, s.state.Progress()); err != nil {
		logger.FromContext(ctx).WithPrefix("quiz").Warn("failed to save progress: %v", err)
	}
}

func (s *quizService) record(ctx context.Context, rec models.AnswerRecord) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Insert(ctx, rec); err != nil {
		logger.FromContext(ctx).WithPrefix("quiz").Warn("failed to record answer: %v", err)
	}
}
