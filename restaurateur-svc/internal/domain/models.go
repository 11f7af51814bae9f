package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusUnprocessed OrderStatus = "unprocessed"
	StatusPreparing   OrderStatus = "preparing"
	StatusDelivering  OrderStatus = "delivering"
	StatusCompleted   OrderStatus = "completed"
	StatusCancelled   OrderStatus = "cancelled"
)

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Restaurant struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Address      string `json:"address" db:"address"`
	ContactPhone string `json:"contact_phone" db:"contact_phone"`
}

type Product struct {
	ID    int             `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
}

type MenuEntry struct {
	RestaurantID int  `json:"restaurant_id" db:"restaurant_id"`
	ProductID    int  `json:"product_id" db:"product_id"`
	Availability bool `json:"availability" db:"availability"`
}

// Menu is one consistent read of the catalog. Restaurants keep the order they
// were read in; ranking ties fall back to it.
type Menu struct {
	Restaurants []Restaurant
	Products    []Product
	Entries     []MenuEntry
}

type OrderLine struct {
	OrderID   int             `json:"-" db:"order_id"`
	ProductID int             `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

type Order struct {
	ID            int             `json:"id" db:"id"`
	Firstname     string          `json:"firstname" db:"firstname"`
	Lastname      string          `json:"lastname" db:"lastname"`
	Phonenumber   string          `json:"phonenumber" db:"phonenumber"`
	Address       string          `json:"address" db:"address"`
	Status        OrderStatus     `json:"status" db:"status"`
	Comment       string          `json:"comment" db:"comment"`
	PaymentMethod *string         `json:"payment_method" db:"payment_method"`
	RestaurantID  *int            `json:"restaurant_id" db:"restaurant_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	CalledAt      *time.Time      `json:"called_at" db:"called_at"`
	DeliveredAt   *time.Time      `json:"delivered_at" db:"delivered_at"`
	Total         decimal.Decimal `json:"total" db:"-"`
	Lines         []OrderLine     `json:"lines" db:"-"`
}

// Candidate is a restaurant able to serve an order. DistanceKm is nil when the
// distance could not be computed.
type Candidate struct {
	Restaurant Restaurant `json:"restaurant"`
	DistanceKm *float64   `json:"distance_km"`
}

// RankedOrder carries the order's candidates. AddressUnresolved is only set when
// there are candidates: without them the order address is never geocoded.
type RankedOrder struct {
	Order             Order       `json:"order"`
	Candidates        []Candidate `json:"candidates"`
	AddressUnresolved bool        `json:"address_unresolved,omitempty"`
	Invalid           bool        `json:"invalid,omitempty"`
}

type ProductAvailability struct {
	Product      Product `json:"product"`
	Availability []bool  `json:"availability"`
}

type AvailabilityMatrix struct {
	Restaurants []Restaurant          `json:"restaurants"`
	Products    []ProductAvailability `json:"products"`
}

// Transition moves an order from one of From to To. Fields left nil are not touched.
type Transition struct {
	OrderID      int
	From         []OrderStatus
	To           OrderStatus
	RestaurantID *int
	CalledAt     *time.Time
	DeliveredAt  *time.Time
}
