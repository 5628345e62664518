package service

import (
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/classify"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/events"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/repository"
)

type Services struct {
	Repos        *repository.Repos
	Records      *RecordService
	Distribution *DistributionService
	Tracking     *TrackingService
	Keys         *KeyService
	Reports      *ReportService
}

// Options carries the pluggable collaborators. Zero values fall back to the
// database key store, no events, and no cloud reporting.
type Options struct {
	ClassificationType string
	Keys               KeyStore
	Events             events.Publisher
	Storage            ReportStorage
	Alerts             Alerter
}

func New(db *sqlx.DB, opts Options) *Services {
	repos := repository.New(db)
	if opts.Keys == nil {
		opts.Keys = repos.Keys()
	}
	if opts.ClassificationType == "" {
		opts.ClassificationType = "corrosion_rate"
	}
	tracking := NewTrackingService(repos, classify.SeverityScale())
	return &Services{
		Repos:        repos,
		Records:      NewRecordService(repos, opts.Events),
		Distribution: NewDistributionService(repos, opts.ClassificationType),
		Tracking:     tracking,
		Keys:         NewKeyService(opts.Keys),
		Reports:      NewReportService(tracking, opts.Storage, opts.Alerts),
	}
}
