package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

// apiKeyLock serializes key rotation across connections. Held for the
// duration of the rotating transaction.
const apiKeyLock = 0x6b657973

const apiKeyColumns = `id, api_key, created_at, updated_at, is_active`

const selectActiveKey = `SELECT ` + apiKeyColumns + ` FROM gemini_key
	WHERE is_active = true ORDER BY updated_at DESC, id DESC LIMIT 1`

// PostgresKeys keeps the Gemini key in the single-active-row gemini_key
// table.
type PostgresKeys struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresKeys(db *sqlx.DB) *PostgresKeys {
	return &PostgresKeys{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *Repos) Keys() *PostgresKeys { return NewPostgresKeys(r.db) }

func (p *PostgresKeys) ActiveKey(ctx context.Context) (*domain.APIKey, error) {
	var k domain.APIKey
	if err := p.db.GetContext(ctx, &k, selectActiveKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active api key: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("active api key: %w", err)
	}
	return &k, nil
}

// Replace deactivates every active key and inserts apiKey as the only
// active one.
func (p *PostgresKeys) Replace(ctx context.Context, apiKey string) (*domain.APIKey, error) {
	var out *domain.APIKey
	err := p.inLockedTx(ctx, func(tx *sqlx.Tx, now time.Time) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE gemini_key SET is_active = false, updated_at = $1 WHERE is_active = true`, now); err != nil {
			return fmt.Errorf("deactivate api keys: %w", err)
		}
		k, err := insertKey(ctx, tx, apiKey, now)
		out = k
		return err
	})
	return out, err
}

// UpsertActive rewrites the active key in place, or inserts one when no key
// is active. Any other row still flagged active is switched off.
func (p *PostgresKeys) UpsertActive(ctx context.Context, apiKey string) (*domain.APIKey, error) {
	var out *domain.APIKey
	err := p.inLockedTx(ctx, func(tx *sqlx.Tx, now time.Time) error {
		var cur domain.APIKey
		err := tx.GetContext(ctx, &cur, selectActiveKey+` FOR UPDATE`)
		if errors.Is(err, sql.ErrNoRows) {
			k, err := insertKey(ctx, tx, apiKey, now)
			out = k
			return err
		}
		if err != nil {
			return fmt.Errorf("load active api key: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE gemini_key SET api_key = $1, updated_at = $2 WHERE id = $3`,
			apiKey, now, cur.ID); err != nil {
			return fmt.Errorf("update api key %d: %w", cur.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE gemini_key SET is_active = false, updated_at = $1 WHERE is_active = true AND id <> $2`,
			now, cur.ID); err != nil {
			return fmt.Errorf("deactivate stray api keys: %w", err)
		}
		cur.APIKey = apiKey
		cur.UpdatedAt = now
		out = &cur
		return nil
	})
	return out, err
}

func (p *PostgresKeys) inLockedTx(ctx context.Context, fn func(tx *sqlx.Tx, now time.Time) error) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin api key tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, apiKeyLock); err != nil {
		return fmt.Errorf("lock api keys: %w", err)
	}
	if err := fn(tx, p.now()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit api key tx: %w", err)
	}
	return nil
}

func insertKey(ctx context.Context, tx *sqlx.Tx, apiKey string, now time.Time) (*domain.APIKey, error) {
	k := &domain.APIKey{APIKey: apiKey, CreatedAt: now, UpdatedAt: now, IsActive: true}
	err := tx.QueryRowxContext(ctx,
		`INSERT INTO gemini_key (api_key, created_at, updated_at, is_active) VALUES ($1, $2, $2, true) RETURNING id`,
		apiKey, now).Scan(&k.ID)
	if err != nil {
		return nil, fmt.Errorf("insert api key: %w", err)
	}
	return k, nil
}
