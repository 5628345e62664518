package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/classify"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

type DistributionStore interface {
	FindAllTmls(ctx context.Context) ([]domain.Tml, error)
	FindMeasurementsByTml(ctx context.Context, tmlRecordID int64) ([]domain.Measurement, error)
	FindClassificationsByType(ctx context.Context, classificationType string) ([]domain.Classification, error)
}

// DistributionService counts, per circuit, how many TMLs currently sit in
// each stored classification range.
type DistributionService struct {
	store              DistributionStore
	classificationType string
}

func NewDistributionService(store DistributionStore, classificationType string) *DistributionService {
	return &DistributionService{store: store, classificationType: classificationType}
}

type edge struct{ circuit, label string }

// Build classifies each TML's latest recorded corrosion rate and returns one
// row per (circuit, label) pair that has at least one TML. TMLs without any
// corrosion rate, or whose rate falls outside every range, are left out.
func (s *DistributionService) Build(ctx context.Context) ([]domain.DistributionRow, error) {
	cs, err := s.store.FindClassificationsByType(ctx, s.classificationType)
	if err != nil {
		return nil, fmt.Errorf("load classifications: %w", err)
	}
	ranges := classify.FromClassifications(cs)

	tmls, err := s.store.FindAllTmls(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tmls: %w", err)
	}

	byCircuit := make(map[string][]domain.Tml)
	for _, t := range tmls {
		byCircuit[t.CircuitID] = append(byCircuit[t.CircuitID], t)
	}

	counts := make(map[edge]int)
	for circuit, group := range byCircuit {
		for _, t := range group {
			ms, err := s.store.FindMeasurementsByTml(ctx, t.ID)
			if err != nil {
				return nil, fmt.Errorf("load measurements for tml %d: %w", t.ID, err)
			}
			rate := latestRate(ms)
			if label, ok := classify.Classify(rate, ranges); ok {
				counts[edge{circuit, label}]++
			}
		}
	}

	out := make([]domain.DistributionRow, 0, len(counts))
	for e, n := range counts {
		out = append(out, domain.DistributionRow{Source: e.circuit, Target: e.label, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out, nil
}

// latestRate expects ms newest first and returns the first non-nil rate.
func latestRate(ms []domain.Measurement) *float64 {
	for _, m := range ms {
		if m.CorrosionRate != nil {
			return m.CorrosionRate
		}
	}
	return nil
}
