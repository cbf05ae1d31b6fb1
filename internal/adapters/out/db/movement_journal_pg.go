// internal/adapters/out/db/movement_journal_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reliefdesk/internal/application/usecase"
)

// MovementJournalPG implements usecase.MovementJournalPort with PostgreSQL.
// stock_movements は追記専用のテーブルで、確定済みのバッチだけを記録します。
type MovementJournalPG struct {
	DB *sql.DB
}

func NewMovementJournalPG(db *sql.DB) *MovementJournalPG {
	return &MovementJournalPG{DB: db}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (r *MovementJournalPG) EnsureSchema(ctx context.Context) error {
	if r == nil || r.DB == nil {
		return errors.New("movement journal: db is nil")
	}
	const q = `
CREATE TABLE IF NOT EXISTS stock_movements (
  id             BIGSERIAL PRIMARY KEY,
  article_id     TEXT        NOT NULL,
  article_name   TEXT        NOT NULL,
  direction      TEXT        NOT NULL,
  quantity       BIGINT      NOT NULL,
  ref_collection TEXT        NOT NULL,
  ref_id         TEXT        NOT NULL,
  recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)
`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

// =======================
// Commands
// =======================

func (r *MovementJournalPG) Append(ctx context.Context, entries []usecase.MovementJournalEntry) error {
	if r == nil || r.DB == nil {
		return errors.New("movement journal: db is nil")
	}
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
INSERT INTO stock_movements
  (article_id, article_name, direction, quantity, ref_collection, ref_id, recorded_at)
VALUES
  ($1, $2, $3, $4, $5, $6, $7)
`
	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, q,
			e.ArticleID,
			e.ArticleName,
			e.Direction,
			e.Quantity,
			e.RefCollection,
			e.RefID,
			now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
