package main

import (
	"context"
	"os"

	httpapi "github.com/devmanorg/star-burger/catalog-svc/internal/api/http"
	"github.com/devmanorg/star-burger/catalog-svc/internal/service"
	"github.com/devmanorg/star-burger/catalog-svc/internal/storage"
	"github.com/devmanorg/star-burger/config"
	"github.com/devmanorg/star-burger/migrations"
	"github.com/devmanorg/star-burger/server"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type Config struct {
	config.Postgres
	config.Kafka
	config.Log

	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8081"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

func main() {
	app := &cli.App{
		Name:   "catalog-svc",
		Usage:  "restaurants, menu and order intake",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("catalog-svc stopped")
	}
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	config.InitLogger(cfg.Log)
	return cfg, nil
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := config.MustInitPostgres(cfg.Postgres)
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := config.MustInitPostgres(cfg.Postgres)
	defer db.Close()

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	handler := httpapi.NewHandler(
		service.NewRestaurantService(repo),
		service.NewProductService(repo),
		service.NewOrderService(repo, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}, storage.NewKafkaPublisher(writer)),
	)

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	srv := server.Start("catalog-svc", cfg.HTTPAddr, httpapi.NewRouter(handler))
	return server.Shutdown(ctx, srv)
}
