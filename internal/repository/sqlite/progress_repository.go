package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
	"github.com/vytor/minimalpairs/internal/repository"
)

type progressRepository struct {
	db  *sql.DB
	key string
}

// NewProgressRepository stores progress under key in the progress table.
func NewProgressRepository(db *sql.DB, key string) repository.ProgressRepository {
	return &progressRepository{db: db, key: key}
}

func (r *progressRepository) Load(ctx context.Context) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("loading progress: key=%s", r.key)

	query, args, err := sqlBuilder.Select("payload").
		From("progress").
		Where(squirrel.Eq{"storage_key": r.key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var payload string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no saved progress")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, err
	}

	var p models.Progress
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decode progress %s: %w", r.key, err)
	}
	log.Debug("progress loaded: session=%d, ledger_entries=%d", p.SessionNumber, len(p.Ledger))
	return &p, nil
}

func (r *progressRepository) Save(ctx context.Context, p models.Progress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	query, args, err := sqlBuilder.Insert("progress").
		Columns("storage_key", "payload", "updated_at").
		Values(r.key, string(payload), squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save progress: %v", err)
		return err
	}
	log.Debug("progress saved: session=%d, bytes=%d", p.SessionNumber, len(payload))
	return nil
}
