package domain

import "time"

const EventOrderRegistered = "order_registered"

// OrderEvent is published by catalog-svc after an order is stored.
type OrderEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}
