package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/events"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/repository"
)

// RecordStore is the write side of the measurement store.
type RecordStore interface {
	FindTmlByID(ctx context.Context, id int64) (*domain.Tml, error)
	CreateTml(ctx context.Context, t *domain.Tml) error
	UpdateTml(ctx context.Context, t *domain.Tml) error
	DeleteTml(ctx context.Context, id int64) error
	CreateMeasurement(ctx context.Context, m *domain.Measurement) error
	UpdateMeasurement(ctx context.Context, m *domain.Measurement) error
	DeleteMeasurement(ctx context.Context, id int64) error
	CreateClassification(ctx context.Context, c *domain.Classification) error
	UpdateClassification(ctx context.Context, c *domain.Classification) error
	DeleteClassification(ctx context.Context, id int64) error
}

// RecordService validates writes to TMLs, measurements and classifications
// and announces each successful one.
type RecordService struct {
	store  RecordStore
	events events.Publisher
}

func NewRecordService(store RecordStore, pub events.Publisher) *RecordService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &RecordService{store: store, events: pub}
}

func (s *RecordService) CreateTml(ctx context.Context, t *domain.Tml) error {
	if err := validateTml(t); err != nil {
		return err
	}
	if err := s.store.CreateTml(ctx, t); err != nil {
		return err
	}
	s.announce(ctx, "tml", events.Created, t.ID, t)
	return nil
}

func (s *RecordService) UpdateTml(ctx context.Context, t *domain.Tml) error {
	if err := validateTml(t); err != nil {
		return err
	}
	if err := s.store.UpdateTml(ctx, t); err != nil {
		return err
	}
	s.announce(ctx, "tml", events.Updated, t.ID, t)
	return nil
}

func (s *RecordService) DeleteTml(ctx context.Context, id int64) error {
	if err := s.store.DeleteTml(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, "tml", events.Deleted, id, nil)
	return nil
}

func (s *RecordService) CreateMeasurement(ctx context.Context, m *domain.Measurement) error {
	if err := s.validateMeasurement(ctx, m); err != nil {
		return err
	}
	if err := s.store.CreateMeasurement(ctx, m); err != nil {
		return err
	}
	s.announce(ctx, "measurement", events.Created, m.ID, m)
	return nil
}

func (s *RecordService) UpdateMeasurement(ctx context.Context, m *domain.Measurement) error {
	if err := s.validateMeasurement(ctx, m); err != nil {
		return err
	}
	if err := s.store.UpdateMeasurement(ctx, m); err != nil {
		return err
	}
	s.announce(ctx, "measurement", events.Updated, m.ID, m)
	return nil
}

func (s *RecordService) DeleteMeasurement(ctx context.Context, id int64) error {
	if err := s.store.DeleteMeasurement(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, "measurement", events.Deleted, id, nil)
	return nil
}

func (s *RecordService) CreateClassification(ctx context.Context, c *domain.Classification) error {
	if err := validateClassification(c); err != nil {
		return err
	}
	if err := s.store.CreateClassification(ctx, c); err != nil {
		return err
	}
	s.announce(ctx, "classification", events.Created, c.ID, c)
	return nil
}

func (s *RecordService) UpdateClassification(ctx context.Context, c *domain.Classification) error {
	if err := validateClassification(c); err != nil {
		return err
	}
	if err := s.store.UpdateClassification(ctx, c); err != nil {
		return err
	}
	s.announce(ctx, "classification", events.Updated, c.ID, c)
	return nil
}

func (s *RecordService) DeleteClassification(ctx context.Context, id int64) error {
	if err := s.store.DeleteClassification(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, "classification", events.Deleted, id, nil)
	return nil
}

// announce never fails the write that triggered it.
func (s *RecordService) announce(ctx context.Context, entity, action string, id int64, data any) {
	e := events.Event{Entity: entity, Action: action, ID: id, At: time.Now().UTC(), Data: data}
	if err := s.events.Publish(ctx, e); err != nil {
		log.Warn().Err(err).Str("entity", entity).Str("action", action).Int64("id", id).Msg("event publish failed")
	}
}

func validateTml(t *domain.Tml) error {
	t.CircuitID = strings.TrimSpace(t.CircuitID)
	t.TmlID = strings.TrimSpace(t.TmlID)
	if t.CircuitID == "" {
		return invalid("circuitId", "is required")
	}
	if t.TmlID == "" {
		return invalid("tmlId", "is required")
	}
	return nil
}

func (s *RecordService) validateMeasurement(ctx context.Context, m *domain.Measurement) error {
	if m.TmlRecordID <= 0 {
		return invalid("tmlRecordId", "is required")
	}
	if m.MeasurementDate.IsZero() {
		return invalid("measurementDate", "is required")
	}
	if _, err := s.store.FindTmlByID(ctx, m.TmlRecordID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("tmlRecordId", "references an unknown tml")
		}
		return err
	}
	return nil
}

func validateClassification(c *domain.Classification) error {
	c.ClassificationType = strings.TrimSpace(c.ClassificationType)
	if c.ClassificationType == "" {
		return invalid("classificationType", "is required")
	}
	if strings.TrimSpace(c.RangeLabel) == "" {
		return invalid("rangeLabel", "is required")
	}
	return nil
}
