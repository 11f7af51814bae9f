package main

import (
	"context"
	"os"
	"time"

	"github.com/devmanorg/star-burger/config"
	"github.com/devmanorg/star-burger/geo-worker/internal/service"
	"github.com/devmanorg/star-burger/geo-worker/internal/storage"
	"github.com/devmanorg/star-burger/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type Config struct {
	config.Postgres
	config.Redis
	config.Kafka
	config.Geocoder
	config.Log

	ConsumerGroup string        `envconfig:"KAFKA_CONSUMER_GROUP" default:"geo-worker"`
	DedupTTL      time.Duration `envconfig:"EVENT_DEDUP_TTL" default:"24h"`
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.WithError(err).Fatal("geo-worker stopped")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "geo-worker",
		Usage:  "geocodes addresses of newly registered orders",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "consume order events until interrupted",
				Action: serve,
			},
		},
	}
}

func serve(c *cli.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	config.InitLogger(cfg.Log)

	db := config.MustInitPostgres(cfg.Postgres)
	defer db.Close()

	// The event dedup marker lives in Redis, so the worker cannot start without it.
	rdb := config.MustInitRedis(cfg.Redis)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg.Kafka, cfg.ConsumerGroup)
	defer reader.Close()

	consumer := service.NewConsumer(
		reader,
		config.NewGeocoder(cfg.Geocoder, db, rdb),
		storage.NewRedisMarker(rdb, cfg.DedupTTL),
	)

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	return consumer.Start(ctx)
}
