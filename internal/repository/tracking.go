package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

const startEndJoin = `
SELECT s.tml_record_id AS tml_record_id,
       t.circuit_id    AS circuit_id,
       t.tml_id        AS tml_id,
       s.corrosion_rate AS start_rate,
       f.corrosion_rate AS end_rate
FROM measurements s
JOIN measurements f ON f.tml_record_id = s.tml_record_id
JOIN tmls t ON t.id = s.tml_record_id
WHERE s.measurement_date = ?
  AND f.measurement_date = ?`

// FindStartEndJoin pairs every reading dated start with every reading dated
// end on the same TML. A nil tmlIDs returns pairs for all TMLs; otherwise
// only TMLs whose business id is listed are included.
func (r *Repos) FindStartEndJoin(ctx context.Context, start, end domain.Date, tmlIDs []string) ([]domain.StartEndPair, error) {
	q := startEndJoin
	args := []any{start, end}
	if tmlIDs != nil {
		if len(tmlIDs) == 0 {
			return []domain.StartEndPair{}, nil
		}
		q += "\n  AND t.tml_id IN (?)"
		args = append(args, tmlIDs)
	}
	q += "\nORDER BY t.circuit_id, t.tml_id, s.id, f.id"

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, fmt.Errorf("expand tracking query: %w", err)
	}
	out := []domain.StartEndPair{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("join measurements %s..%s: %w", start, end, err)
	}
	return out, nil
}
