package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/classify"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/config"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/database"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/repository"
)

func f(v float64) *float64 { return &v }

func main() {
	circuits := flag.Int("circuits", 4, "number of circuits")
	perCircuit := flag.Int("tmls", 6, "tmls per circuit")
	inspections := flag.Int("inspections", 4, "inspection dates, six months apart")
	skipBands := flag.Bool("skip-classifications", false, "do not insert the corrosion_rate bands")
	flag.Parse()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	ctx := context.Background()
	repos := repository.New(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if !*skipBands {
		for _, r := range classify.SeverityScale() {
			c := &domain.Classification{ClassificationType: config.ClassificationType(), RangeLabel: r.Label, MinValue: r.Min, MaxValue: r.Max}
			if err := repos.CreateClassification(ctx, c); err != nil {
				log.Fatal().Err(err).Str("label", r.Label).Msg("seed classification")
			}
		}
	}

	first := domain.NewDate(2022, time.January, 1)
	var readings int
	for ci := 1; ci <= *circuits; ci++ {
		circuit := fmt.Sprintf("CIR-%03d", ci)
		for ti := 1; ti <= *perCircuit; ti++ {
			t := &domain.Tml{CircuitID: circuit, TmlID: fmt.Sprintf("TML-%02d", ti)}
			if err := repos.CreateTml(ctx, t); err != nil {
				log.Fatal().Err(err).Str("circuit", circuit).Msg("seed tml")
			}

			rate := rng.Float64() * 15
			thickness := 12 + rng.Float64()*4
			for i := 0; i < *inspections; i++ {
				m := &domain.Measurement{
					TmlRecordID:     t.ID,
					MeasurementDate: domain.Date{Time: first.AddDate(0, 6*i, 0)},
					Thickness:       f(thickness),
					Temperature:     f(80 + rng.Float64()*120),
					CorrosionRate:   f(rate),
				}
				// roughly one reading in ten comes back without a rate
				if rng.Intn(10) == 0 {
					m.CorrosionRate = nil
				}
				if err := repos.CreateMeasurement(ctx, m); err != nil {
					log.Fatal().Err(err).Int64("tml", t.ID).Msg("seed measurement")
				}
				readings++
				rate += rng.Float64() * 12
				thickness -= rate / 1000
			}
		}
	}

	log.Info().
		Int("circuits", *circuits).
		Int("tmls", *circuits * *perCircuit).
		Int("measurements", readings).
		Msg("seed done")
}
