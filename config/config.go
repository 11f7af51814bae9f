package config

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/devmanorg/star-burger/geo"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Postgres, Redis, Kafka, Geocoder and Log are embedded anonymously into the
// per-service configs so their env keys stay unprefixed (DB_HOST, REDIS_HOST, ...).
type Postgres struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"star_burger"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.DBHost, p.DBPort, p.DBUser, p.DBPassword, p.DBName, p.DBSSLMode)
}

type Redis struct {
	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
}

type Kafka struct {
	KafkaBroker string `envconfig:"KAFKA_BROKER" default:"localhost:9092"`
	OrdersTopic string `envconfig:"KAFKA_ORDERS_TOPIC" default:"orders"`
}

type Geocoder struct {
	GeocoderURL     string        `envconfig:"GEOCODER_URL" default:"https://geocode-maps.yandex.ru/1.x"`
	GeocoderAPIKey  string        `envconfig:"YANDEX_GEOCODER_API_KEY"`
	GeocoderTimeout time.Duration `envconfig:"GEOCODER_TIMEOUT" default:"5s"`
	RefreshWindow   time.Duration `envconfig:"GEOCODE_REFRESH_WINDOW" default:"168h"`
	HotCacheTTL     time.Duration `envconfig:"GEOCODE_HOT_TTL" default:"24h"`
}

type Log struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load fills cfg from the environment.
func Load(cfg interface{}) error {
	return envconfig.Process("", cfg)
}

func InitLogger(cfg Log) {
	if cfg.LogFormat == "text" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func MustInitPostgres(cfg Postgres) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("Failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Redis) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
		DB:   cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	return client
}

// InitRedis is MustInitRedis for callers that can run without Redis: an
// unreachable server is logged and nil is returned.
func InitRedis(cfg Redis) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
		DB:   cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without it")
		client.Close()
		return nil
	}

	return client
}

func NewKafkaReader(cfg Kafka, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.OrdersTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.OrdersTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

// NewGeocoder builds the geocode cache: Redis in front of the geo_cache table,
// with the Yandex geocoder behind both. A nil redis client skips the hot layer.
func NewGeocoder(cfg Geocoder, db *sql.DB, client *redis.Client) *geo.Cache {
	var store geo.Store = geo.NewPostgresStore(db)
	if client != nil {
		store = geo.NewRedisStore(client, store, cfg.HotCacheTTL)
	}

	if cfg.GeocoderAPIKey == "" {
		log.Warn("YANDEX_GEOCODER_API_KEY is empty, geocoding requests will be rejected")
	}
	provider := geo.NewYandexProvider(&http.Client{}, cfg.GeocoderURL, cfg.GeocoderAPIKey, cfg.GeocoderTimeout)

	return geo.NewCache(store, provider, geo.WithRefreshWindow(cfg.RefreshWindow))
}
