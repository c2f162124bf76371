package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
	"github.com/vytor/minimalpairs/internal/repository"
)

const defaultHistoryLimit = 50

type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository implementation
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Insert(ctx context.Context, rec models.AnswerRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("inserting answer: item_id=%s, correct=%t", rec.ItemID, rec.Correct)

	b := sqlBuilder.Insert("answer_history").
		Columns("item_id", "category", "correct", "box_before", "box_after", "session")
	values := []any{rec.ItemID, string(rec.Category), boolToInt(rec.Correct), rec.BoxBefore, rec.BoxAfter, rec.Session}
	if !rec.AnsweredAt.IsZero() {
		b = b.Columns("answered_at")
		values = append(values, rec.AnsweredAt.UTC())
	}

	query, args, err := b.Values(values...).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *historyRepository) Recent(ctx context.Context, limit int) ([]models.AnswerRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query, args, err := sqlBuilder.Select(
		"id", "item_id", "category", "correct", "box_before", "box_after", "session", "answered_at",
	).From("answer_history").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query history: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []models.AnswerRecord{}
	for rows.Next() {
		var rec models.AnswerRecord
		var category string
		var correct int
		if err := rows.Scan(&rec.ID, &rec.ItemID, &category, &correct, &rec.BoxBefore, &rec.BoxAfter, &rec.Session, &rec.AnsweredAt); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		rec.Category = models.Category(category)
		rec.Correct = correct != 0
		out = append(out, rec)
	}
	log.Debug("found %d history rows", len(out))
	return out, rows.Err()
}

func (r *historyRepository) Clear(ctx context.Context) error {
	query, args, err := sqlBuilder.Delete("answer_history").ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).WithPrefix("history_repo").Error("failed to clear history: %v", err)
		return err
	}
	return nil
}
