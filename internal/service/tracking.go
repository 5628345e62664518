package service

import (
	"context"
	"strings"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/classify"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

type TrackingStore interface {
	FindStartEndJoin(ctx context.Context, start, end domain.Date, tmlIDs []string) ([]domain.StartEndPair, error)
}

// TrackingService reports how TMLs moved between two inspection dates,
// labelling each by the band its end-date rate lands in.
type TrackingService struct {
	store TrackingStore
	scale []classify.Range
}

func NewTrackingService(store TrackingStore, scale []classify.Range) *TrackingService {
	return &TrackingService{store: store, scale: scale}
}

// TrackAll covers every TML read on both dates whose start rate is known
// and at most maxStartRate.
func (s *TrackingService) TrackAll(ctx context.Context, start, end domain.Date, maxStartRate float64) ([]domain.TrackingRow, error) {
	pairs, err := s.store.FindStartEndJoin(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TrackingRow, 0, len(pairs))
	for _, p := range pairs {
		if p.StartRate == nil || *p.StartRate > maxStartRate {
			continue
		}
		out = append(out, s.row(p))
	}
	return out, nil
}

// TrackSubset covers only TMLs whose business id is in tmlIDs. No start
// rate condition applies.
func (s *TrackingService) TrackSubset(ctx context.Context, start, end domain.Date, tmlIDs []string) ([]domain.TrackingRow, error) {
	if len(tmlIDs) == 0 {
		return []domain.TrackingRow{}, nil
	}
	pairs, err := s.store.FindStartEndJoin(ctx, start, end, tmlIDs)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TrackingRow, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, s.row(p))
	}
	return out, nil
}

func (s *TrackingService) row(p domain.StartEndPair) domain.TrackingRow {
	r := domain.TrackingRow{
		TmlRecordID: p.TmlRecordID,
		CircuitID:   p.CircuitID,
		TmlID:       p.TmlID,
		StartRate:   p.StartRate,
		EndRate:     p.EndRate,
	}
	if label, ok := classify.Classify(p.EndRate, s.scale); ok {
		r.EndCategory = &label
	}
	return r
}

// ParseTmlIDs splits a comma-separated list, trimming whitespace and
// dropping empty and repeated entries.
func ParseTmlIDs(raw string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
