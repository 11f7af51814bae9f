package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ContactPhone string    `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	CategoryID    *int            `json:"category_id"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	SpecialStatus bool            `json:"special_status"`
	Description   string          `json:"description"`
}

type MenuEntry struct {
	RestaurantID int  `json:"restaurant_id"`
	ProductID    int  `json:"product_id"`
	Availability bool `json:"availability"`
}

type Banner struct {
	Title string `json:"title"`
	Src   string `json:"src"`
	Text  string `json:"text"`
}

// OrderRequest is the body of POST /api/order.
type OrderRequest struct {
	Firstname   string             `json:"firstname"`
	Lastname    string             `json:"lastname"`
	Phonenumber string             `json:"phonenumber"`
	Address     string             `json:"address"`
	Products    []OrderLineRequest `json:"products"`
}

type OrderLineRequest struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

type OrderLine struct {
	ProductID   int             `json:"product"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Order struct {
	ID          int             `json:"order_id"`
	Firstname   string          `json:"firstname"`
	Lastname    string          `json:"lastname"`
	Phonenumber string          `json:"phonenumber"`
	Address     string          `json:"address"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Total       decimal.Decimal `json:"total"`
	Lines       []OrderLine     `json:"products"`
	QRCode      string          `json:"qr_code,omitempty"`
}

// Recalculate sets Total from the line prices.
func (o *Order) Recalculate() {
	o.Total = decimal.Zero
	for _, line := range o.Lines {
		o.Total = o.Total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
}

const EventOrderRegistered = "order_registered"

type OrderEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}
