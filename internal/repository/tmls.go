package repository

import (
	"context"
	"fmt"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

const tmlColumns = `id, circuit_id, tml_id`

func (r *Repos) FindAllTmls(ctx context.Context) ([]domain.Tml, error) {
	out := []domain.Tml{}
	if err := r.db.SelectContext(ctx, &out, `SELECT `+tmlColumns+` FROM tmls ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list tmls: %w", err)
	}
	return out, nil
}

func (r *Repos) FindTmlByID(ctx context.Context, id int64) (*domain.Tml, error) {
	var t domain.Tml
	if err := r.db.GetContext(ctx, &t, `SELECT `+tmlColumns+` FROM tmls WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "tml", id)
	}
	return &t, nil
}

func (r *Repos) FindTmlsByCircuit(ctx context.Context, circuitID string) ([]domain.Tml, error) {
	out := []domain.Tml{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+tmlColumns+` FROM tmls WHERE circuit_id = $1 ORDER BY id`, circuitID)
	if err != nil {
		return nil, fmt.Errorf("list tmls for circuit %q: %w", circuitID, err)
	}
	return out, nil
}

func (r *Repos) CreateTml(ctx context.Context, t *domain.Tml) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO tmls (circuit_id, tml_id) VALUES ($1, $2) RETURNING id`,
		t.CircuitID, t.TmlID).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert tml: %w", err)
	}
	return nil
}

func (r *Repos) UpdateTml(ctx context.Context, t *domain.Tml) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tmls SET circuit_id = $1, tml_id = $2 WHERE id = $3`,
		t.CircuitID, t.TmlID, t.ID)
	if err != nil {
		return fmt.Errorf("update tml %d: %w", t.ID, err)
	}
	return affected(res, "tml", t.ID)
}

// DeleteTml removes the TML together with its measurements.
func (r *Repos) DeleteTml(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tml %d: %w", id, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE tml_record_id = $1`, id); err != nil {
		return fmt.Errorf("delete measurements of tml %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tmls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tml %d: %w", id, err)
	}
	if err := affected(res, "tml", id); err != nil {
		return err
	}
	return tx.Commit()
}
