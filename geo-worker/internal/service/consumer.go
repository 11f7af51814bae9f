package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/devmanorg/star-burger/geo"
	"github.com/devmanorg/star-burger/geo-worker/internal/domain"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const readRetryDelay = time.Second

// Consumer warms the geocode cache with the delivery address of every new
// order, so the dashboard rarely waits on the geocoder.
type Consumer struct {
	Reader   MessageReader
	Geocoder geo.Resolver
	Marker   EventMarker
}

func NewConsumer(reader MessageReader, geocoder geo.Resolver, marker EventMarker) *Consumer {
	return &Consumer{
		Reader:   reader,
		Geocoder: geocoder,
		Marker:   marker,
	}
}

// Start reads until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	log.Info("Starting geocode warm-up consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("geocode consumer stopped")
				return nil
			}
			log.WithError(err).Error("Error reading message")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryDelay):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WithError(err).WithField("offset", message.Offset).Warn("Error unmarshaling message")
			continue
		}

		c.ProcessOrder(ctx, event)
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) {
	if event.Type != domain.EventOrderRegistered {
		return
	}
	logger := log.WithFields(log.Fields{"order_id": event.OrderID, "event_id": event.EventID})

	if c.Marker != nil && event.EventID != "" {
		first, err := c.Marker.MarkProcessed(ctx, event.EventID)
		if err != nil {
			logger.WithError(err).Warn("event marker unavailable, processing anyway")
		} else if !first {
			logger.Debug("duplicate order event skipped")
			return
		}
	}

	coords, err := c.Geocoder.Resolve(ctx, event.Address)
	if err != nil {
		var persistenceErr *geo.PersistenceError
		if errors.As(err, &persistenceErr) {
			logger.WithError(err).Error("geocode cache write failed")
			return
		}
		logger.WithError(err).Warn("address warm-up failed")
		return
	}

	if coords == nil {
		logger.WithField("address", event.Address).Info("delivery address could not be geocoded")
		return
	}
	logger.WithFields(log.Fields{"lat": coords.Lat, "lon": coords.Lon}).Info("delivery address geocoded")
}
