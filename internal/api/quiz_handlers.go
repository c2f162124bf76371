package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/minimalpairs/internal/errors"
	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
	"github.com/vytor/minimalpairs/internal/services"
)

const defaultHistoryLimit = 50

// actionResponse is returned by every endpoint that changes quiz state. It
// carries the notifications raised by the action, in order, and the state
// afterwards.
type actionResponse struct {
	Events []services.Event        `json:"events"`
	State  services.Snapshot       `json:"state"`
	Answer *services.AnswerOutcome `json:"answer,omitempty"`
}

type answerRequest struct {
	Slot models.Slot `json:"slot"`
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

// withEvents returns a context whose service calls are recorded by rec.
func withEvents(ctx context.Context) (context.Context, *services.Recorder) {
	rec := services.NewRecorder()
	return services.WithNotifier(ctx, rec), rec
}

func (s *Server) respondAction(w http.ResponseWriter, r *http.Request, rec *services.Recorder, answer *services.AnswerOutcome) {
	writeJSON(w, r, http.StatusOK, actionResponse{
		Events: rec.Drain(),
		State:  s.Quiz.Snapshot(r.Context()),
		Answer: answer,
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Quiz.Snapshot(r.Context()))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	ctx, rec := withEvents(r.Context())
	if _, err := s.Quiz.RequestNext(ctx); err != nil {
		handleError(w, r, err)
		return
	}
	s.respondAction(w, r, rec, nil)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ctx, rec := withEvents(r.Context())
	out, err := s.Quiz.Answer(ctx, req.Slot)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !out.Accepted {
		log.Debug("answer ignored: slot=%s", req.Slot)
	}
	s.respondAction(w, r, rec, out)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"categories": s.Quiz.Categories(r.Context()),
	})
}

func (s *Server) handleToggleCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Enabled == nil {
		handleError(w, r, errors.NewValidationError("enabled", "required"))
		return
	}

	ctx, rec := withEvents(r.Context())
	if err := s.Quiz.ToggleCategory(ctx, category, *req.Enabled); err != nil {
		handleError(w, r, err)
		return
	}
	s.respondAction(w, r, rec, nil)
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	ctx, rec := withEvents(r.Context())
	if _, err := s.Quiz.ContinueReviewing(ctx); err != nil {
		handleError(w, r, err)
		return
	}
	s.respondAction(w, r, rec, nil)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Info("resetting all progress")

	ctx, rec := withEvents(r.Context())
	if _, err := s.Quiz.ResetAllProgress(ctx); err != nil {
		handleError(w, r, err)
		return
	}
	s.respondAction(w, r, rec, nil)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = n
	}

	recs, err := s.Quiz.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"history": recs})
}
