package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/cloud"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/events"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/repository"
)

func ptr(v float64) *float64 { return &v }

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// memStore keeps TMLs, measurements and classifications in slices and
// answers the same queries the SQL store does.
type memStore struct {
	tmls            []domain.Tml
	measurements    []domain.Measurement
	classifications []domain.Classification
	nextID          int64
	err             error
	joinCalls       int
}

func (s *memStore) addTml(circuit, tml string) int64 {
	s.nextID++
	s.tmls = append(s.tmls, domain.Tml{ID: s.nextID, CircuitID: circuit, TmlID: tml})
	return s.nextID
}

func (s *memStore) addMeasurement(tmlRecordID int64, on string, rate *float64) {
	s.nextID++
	s.measurements = append(s.measurements, domain.Measurement{
		ID: s.nextID, TmlRecordID: tmlRecordID, MeasurementDate: date(on), CorrosionRate: rate,
	})
}

func (s *memStore) addClassification(label string, min, max *float64) {
	s.nextID++
	s.classifications = append(s.classifications, domain.Classification{
		ID: s.nextID, ClassificationType: "corrosion_rate", RangeLabel: label, MinValue: min, MaxValue: max,
	})
}

func (s *memStore) FindAllTmls(context.Context) ([]domain.Tml, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tmls, nil
}

func (s *memStore) FindTmlByID(_ context.Context, id int64) (*domain.Tml, error) {
	for _, t := range s.tmls {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, fmt.Errorf("tml %d: %w", id, repository.ErrNotFound)
}

func (s *memStore) FindMeasurementsByTml(_ context.Context, id int64) ([]domain.Measurement, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Measurement
	for _, m := range s.measurements {
		if m.TmlRecordID == id {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MeasurementDate.Equal(out[j].MeasurementDate.Time) {
			return out[i].MeasurementDate.After(out[j].MeasurementDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memStore) FindClassificationsByType(_ context.Context, typ string) ([]domain.Classification, error) {
	var out []domain.Classification
	for _, c := range s.classifications {
		if c.ClassificationType == typ {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) FindStartEndJoin(_ context.Context, start, end domain.Date, tmlIDs []string) ([]domain.StartEndPair, error) {
	s.joinCalls++
	if s.err != nil {
		return nil, s.err
	}
	allowed := map[string]bool{}
	for _, id := range tmlIDs {
		allowed[id] = true
	}
	var out []domain.StartEndPair
	for _, a := range s.measurements {
		if !a.MeasurementDate.Equal(start.Time) {
			continue
		}
		for _, b := range s.measurements {
			if !b.MeasurementDate.Equal(end.Time) || b.TmlRecordID != a.TmlRecordID {
				continue
			}
			t, _ := s.FindTmlByID(context.Background(), a.TmlRecordID)
			if tmlIDs != nil && !allowed[t.TmlID] {
				continue
			}
			out = append(out, domain.StartEndPair{
				TmlRecordID: t.ID, CircuitID: t.CircuitID, TmlID: t.TmlID,
				StartRate: a.CorrosionRate, EndRate: b.CorrosionRate,
			})
		}
	}
	return out, nil
}

func (s *memStore) CreateTml(_ context.Context, t *domain.Tml) error {
	t.ID = s.addTml(t.CircuitID, t.TmlID)
	return s.err
}

func (s *memStore) UpdateTml(_ context.Context, t *domain.Tml) error {
	for i := range s.tmls {
		if s.tmls[i].ID == t.ID {
			s.tmls[i] = *t
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memStore) DeleteTml(_ context.Context, id int64) error {
	for i := range s.tmls {
		if s.tmls[i].ID == id {
			s.tmls = append(s.tmls[:i], s.tmls[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memStore) CreateMeasurement(_ context.Context, m *domain.Measurement) error {
	s.nextID++
	m.ID = s.nextID
	s.measurements = append(s.measurements, *m)
	return nil
}

func (s *memStore) UpdateMeasurement(context.Context, *domain.Measurement) error { return nil }
func (s *memStore) DeleteMeasurement(context.Context, int64) error               { return repository.ErrNotFound }

func (s *memStore) CreateClassification(_ context.Context, c *domain.Classification) error {
	s.nextID++
	c.ID = s.nextID
	s.classifications = append(s.classifications, *c)
	return nil
}

func (s *memStore) UpdateClassification(context.Context, *domain.Classification) error { return nil }
func (s *memStore) DeleteClassification(context.Context, int64) error                 { return nil }

type recorder struct {
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Close() {}

type fakeStorage struct {
	key  string
	data []byte
	err  error
}

func (f *fakeStorage) UploadReport(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.key, f.data = key, data
	return "https://signed/" + key, f.err
}

type fakeAlerts struct {
	sent []cloud.CriticalTml
	err  error
}

func (f *fakeAlerts) SendCorrosionAlert(_ context.Context, _, _ string, tmls []cloud.CriticalTml) error {
	f.sent = append(f.sent, tmls...)
	return f.err
}
