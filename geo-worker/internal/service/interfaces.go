package service

import (
	"context"

	"github.com/devmanorg/star-burger/geo-worker/internal/domain"
	"github.com/devmanorg/star-burger/geo-worker/internal/storage"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type EventMarker interface {
	// MarkProcessed reports false when eventID was already marked.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	ProcessOrder(ctx context.Context, event domain.OrderEvent)
}

var (
	_ MessageReader     = (*kafka.Reader)(nil)
	_ EventMarker       = (*storage.RedisMarker)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
