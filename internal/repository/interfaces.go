package repository

import (
	"context"

	"github.com/vytor/minimalpairs/internal/models"
)

// ProgressRepository persists the learner's progress as one record that is
// read once at startup and overwritten wholesale on every change.
type ProgressRepository interface {
	// Load returns nil, nil when nothing was saved yet.
	Load(ctx context.Context) (*models.Progress, error)
	Save(ctx context.Context, progress models.Progress) error
}

// HistoryRepository keeps an append-only log of answers.
type HistoryRepository interface {
	Insert(ctx context.Context, record models.AnswerRecord) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.AnswerRecord, error)
	Clear(ctx context.Context) error
}
