package main

import (
	"context"
	"net/http"

	"github.com/devmanorg/star-burger/api-gateway/internal/gateway"
	"github.com/devmanorg/star-burger/config"
	"github.com/devmanorg/star-burger/server"

	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	gateway.Config
	config.Log

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	config.InitLogger(cfg.Log)

	gw := gateway.NewGateway(cfg.Config, &http.Client{})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	ctx, stop := server.SignalContext(context.Background())
	defer stop()

	srv := server.Start("api-gateway", cfg.HTTPAddr, c.Handler(gw.SetupRoutes()))
	if err := server.Shutdown(ctx, srv); err != nil {
		log.WithError(err).Error("api-gateway shutdown")
	}
}
