package repository

import (
	"context"
	"fmt"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

const measurementColumns = `id, tml_record_id, measurement_date, thickness, temperature, corrosion_rate`

func (r *Repos) FindAllMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	out := []domain.Measurement{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+measurementColumns+` FROM measurements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return out, nil
}

func (r *Repos) FindMeasurementByID(ctx context.Context, id int64) (*domain.Measurement, error) {
	var m domain.Measurement
	err := r.db.GetContext(ctx, &m, `SELECT `+measurementColumns+` FROM measurements WHERE id = $1`, id)
	if err != nil {
		return nil, notFound(err, "measurement", id)
	}
	return &m, nil
}

// FindMeasurementsByTml returns the TML's measurements newest first. Rows
// sharing a date come back newest insert first.
func (r *Repos) FindMeasurementsByTml(ctx context.Context, tmlRecordID int64) ([]domain.Measurement, error) {
	out := []domain.Measurement{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+measurementColumns+` FROM measurements
		 WHERE tml_record_id = $1
		 ORDER BY measurement_date DESC, id DESC`, tmlRecordID)
	if err != nil {
		return nil, fmt.Errorf("list measurements for tml %d: %w", tmlRecordID, err)
	}
	return out, nil
}

func (r *Repos) FindMeasurementsByDate(ctx context.Context, date domain.Date) ([]domain.Measurement, error) {
	out := []domain.Measurement{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+measurementColumns+` FROM measurements WHERE measurement_date = $1 ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("list measurements on %s: %w", date, err)
	}
	return out, nil
}

func (r *Repos) FindDistinctMeasurementDates(ctx context.Context) ([]domain.Date, error) {
	out := []domain.Date{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT DISTINCT measurement_date FROM measurements ORDER BY measurement_date`)
	if err != nil {
		return nil, fmt.Errorf("list measurement dates: %w", err)
	}
	return out, nil
}

func (r *Repos) CreateMeasurement(ctx context.Context, m *domain.Measurement) error {
	rows, err := r.db.NamedQueryContext(ctx,
		`INSERT INTO measurements (tml_record_id, measurement_date, thickness, temperature, corrosion_rate)
		 VALUES (:tml_record_id, :measurement_date, :thickness, :temperature, :corrosion_rate)
		 RETURNING id`, m)
	if err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&m.ID); err != nil {
			return fmt.Errorf("insert measurement: %w", err)
		}
	}
	return rows.Err()
}

func (r *Repos) UpdateMeasurement(ctx context.Context, m *domain.Measurement) error {
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE measurements
		 SET tml_record_id = :tml_record_id, measurement_date = :measurement_date,
		     thickness = :thickness, temperature = :temperature, corrosion_rate = :corrosion_rate
		 WHERE id = :id`, m)
	if err != nil {
		return fmt.Errorf("update measurement %d: %w", m.ID, err)
	}
	return affected(res, "measurement", m.ID)
}

func (r *Repos) DeleteMeasurement(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete measurement %d: %w", id, err)
	}
	return affected(res, "measurement", id)
}
