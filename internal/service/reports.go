package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/classify"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/cloud"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

type ReportStorage interface {
	UploadReport(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type Alerter interface {
	SendCorrosionAlert(ctx context.Context, start, end string, tmls []cloud.CriticalTml) error
}

var csvHeader = []string{"Circuit ID", "TML ID", "Start Rate", "End Rate", "Risk Level"}

// TrackingCSV renders rows the way the dashboard's risk export does, with
// the two rates added. Missing values are left blank.
func TrackingCSV(rows []domain.TrackingRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		cat := ""
		if r.EndCategory != nil {
			cat = *r.EndCategory
		}
		if err := w.Write([]string{r.CircuitID, r.TmlID, formatRate(r.StartRate), formatRate(r.EndRate), cat}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatRate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

type PublishedReport struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Rows     int    `json:"rows"`
	Critical int    `json:"critical"`
}

// ReportService uploads tracking exports to object storage and raises an
// alert for TMLs that ended in the critical band.
type ReportService struct {
	tracking *TrackingService
	storage  ReportStorage
	alerts   Alerter
	now      func() time.Time
}

// NewReportService accepts nil storage or alerts; Publish then reports
// ErrCloudDisabled or skips alerting respectively.
func NewReportService(tracking *TrackingService, storage ReportStorage, alerts Alerter) *ReportService {
	return &ReportService{
		tracking: tracking,
		storage:  storage,
		alerts:   alerts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ReportService) Publish(ctx context.Context, start, end domain.Date, maxStartRate float64) (*PublishedReport, error) {
	if s.storage == nil {
		return nil, ErrCloudDisabled
	}
	rows, err := s.tracking.TrackAll(ctx, start, end, maxStartRate)
	if err != nil {
		return nil, err
	}
	data, err := TrackingCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("render tracking csv: %w", err)
	}

	key := fmt.Sprintf("reports/tracking/%s_%s_%s.csv", start, end, s.now().Format("20060102T150405Z"))
	url, err := s.storage.UploadReport(ctx, key, data, "text/csv")
	if err != nil {
		return nil, err
	}

	critical := criticalTmls(rows)
	if s.alerts != nil && len(critical) > 0 {
		if err := s.alerts.SendCorrosionAlert(ctx, start.String(), end.String(), critical); err != nil {
			log.Error().Err(err).Str("key", key).Msg("corrosion alert failed")
		}
	}

	log.Info().Str("key", key).Int("rows", len(rows)).Int("critical", len(critical)).Msg("tracking report published")
	return &PublishedReport{Key: key, URL: url, Rows: len(rows), Critical: len(critical)}, nil
}

func criticalTmls(rows []domain.TrackingRow) []cloud.CriticalTml {
	var out []cloud.CriticalTml
	for _, r := range rows {
		if r.EndCategory == nil || *r.EndCategory != classify.Critical || r.EndRate == nil {
			continue
		}
		out = append(out, cloud.CriticalTml{
			CircuitID: r.CircuitID,
			TmlID:     r.TmlID,
			StartRate: r.StartRate,
			EndRate:   *r.EndRate,
		})
	}
	return out
}
