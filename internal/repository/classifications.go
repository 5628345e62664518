package repository

import (
	"context"
	"fmt"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

const classificationColumns = `id, classification_type, range_label, min_value, max_value`

func (r *Repos) FindAllClassifications(ctx context.Context) ([]domain.Classification, error) {
	out := []domain.Classification{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+classificationColumns+` FROM classifications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	return out, nil
}

func (r *Repos) FindClassificationByID(ctx context.Context, id int64) (*domain.Classification, error) {
	var c domain.Classification
	err := r.db.GetContext(ctx, &c, `SELECT `+classificationColumns+` FROM classifications WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err, "classification", id)
	}
	return &c, nil
}

// FindClassificationsByType returns ranges in insertion order; classifiers
// rely on it to break ties between overlapping ranges.
func (r *Repos) FindClassificationsByType(ctx context.Context, classificationType string) ([]domain.Classification, error) {
	out := []domain.Classification{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+classificationColumns+` FROM classifications WHERE classification_type = $1 ORDER BY id`,
		classificationType)
	if err != nil {
		return nil, fmt.Errorf("list classifications of type %q: %w", classificationType, err)
	}
	return out, nil
}

func (r *Repos) CreateClassification(ctx context.Context, c *domain.Classification) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO classifications (classification_type, range_label, min_value, max_value)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		c.ClassificationType, c.RangeLabel, c.MinValue, c.MaxValue).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert classification: %w", err)
	}
	return nil
}

func (r *Repos) UpdateClassification(ctx context.Context, c *domain.Classification) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE classifications SET classification_type = $1, range_label = $2, min_value = $3, max_value = $4
		 WHERE id = $5`,
		c.ClassificationType, c.RangeLabel, c.MinValue, c.MaxValue, c.ID)
	if err != nil {
		return fmt.Errorf("update classification %d: %w", c.ID, err)
	}
	return affected(res, "classification", c.ID)
}

func (r *Repos) DeleteClassification(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete classification %d: %w", id, err)
	}
	return affected(res, "classification", id)
}
