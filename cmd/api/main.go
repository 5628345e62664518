package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/cloud"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/config"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/database"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/events"
	httpHandlers "github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/http"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/repository"
	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if lvl, err := zerolog.ParseLevel(config.LogLevel()); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	ctx := context.Background()
	opts := service.Options{ClassificationType: config.ClassificationType()}

	if config.KeyStore() == "memory" {
		opts.Keys = repository.NewMemoryKeys()
		log.Warn().Msg("api keys held in memory; they are lost on restart")
	}

	if config.EventsEnabled() {
		pub, err := events.NewMQTTPublisher(config.MQTTBroker(), "tml-corrosion-api", config.MQTTTopicPrefix())
		if err != nil {
			log.Fatal().Err(err).Str("broker", config.MQTTBroker()).Msg("mqtt connect")
		}
		defer pub.Close()
		opts.Events = pub
	}

	if config.UseCloudServices() {
		s3c, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 client")
		}
		opts.Storage = s3c
		if arn := config.SNSTopicArn(); arn != "" {
			snsc, err := cloud.NewSNSClient(ctx, config.AWSRegion(), arn)
			if err != nil {
				log.Fatal().Err(err).Msg("sns client")
			}
			opts.Alerts = snsc
		}
	}

	svcs := service.New(db, opts)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: config.CORSOrigins()}))
	app.Use(httpHandlers.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("api listening")
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("server exit")
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
