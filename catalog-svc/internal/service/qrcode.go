package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the order card on the restaurateur dashboard.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	link := fmt.Sprintf("%s/api/restaurateur/orders/%d/candidates", g.BaseURL, orderID)
	return qrcode.Encode(link, qrcode.Medium, 256)
}
