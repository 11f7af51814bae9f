package main

import (
	"context"
	"os"

	"github.com/devmanorg/star-burger/config"
	httpapi "github.com/devmanorg/star-burger/restaurateur-svc/internal/api/http"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/service"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/storage"
	"github.com/devmanorg/star-burger/server"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type Config struct {
	config.Postgres
	config.Redis
	config.Geocoder
	config.Log

	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8082"`
	RankingWorkers int    `envconfig:"RANKING_WORKERS" default:"4"`
}

func main() {
	app := &cli.App{
		Name:   "restaurateur-svc",
		Usage:  "back office for dispatching orders to restaurants",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("restaurateur-svc stopped")
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

	rdb := config.InitRedis(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	geocoder := config.NewGeocoder(cfg.Geocoder, db, rdb)
	repository := storage.NewPostgresRepository(sqlx.NewDb(db, "postgres"))
	dashboard := service.NewDashboardService(repository, service.NewRanker(geocoder, cfg.RankingWorkers))

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	srv := server.Start("restaurateur-svc", cfg.HTTPAddr, httpapi.NewRouter(httpapi.NewHandler(dashboard)))
	return server.Shutdown(ctx, srv)
}
