package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devmanorg/star-burger/catalog-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultPhoneRegion = "RU"

type OrderService struct {
	repo      OrderRepository
	qrEncoder QRGenerator
	publisher OrderPublisher
	region    string
	now       func() time.Time
}

func NewOrderService(repo OrderRepository, qr QRGenerator, publisher OrderPublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		qrEncoder: qr,
		publisher: publisher,
		region:    DefaultPhoneRegion,
		now:       time.Now,
	}
}

// Register validates req and stores it as a new unprocessed order. Line prices
// are taken from the catalog at the moment of the insert.
func (s *OrderService) Register(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	order, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	order.Recalculate()
	order.QRCode = s.QRLink(order.ID)

	if s.qrEncoder != nil {
		qr, err := s.qrEncoder.Generate(order.ID)
		if err == nil {
			err = s.repo.SaveQRCode(ctx, order.ID, qr)
		}
		if err != nil {
			log.WithError(err).WithField("order_id", order.ID).Warn("failed to store order qr code")
		}
	}

	s.publish(ctx, order)

	log.WithFields(log.Fields{"order_id": order.ID, "lines": len(order.Lines)}).Info("order registered")
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		EventID:   uuid.NewString(),
		Type:      domain.EventOrderRegistered,
		OrderID:   order.ID,
		Address:   order.Address,
		Timestamp: s.now().UTC(),
	}
	if err := s.publisher.PublishOrder(ctx, event); err != nil {
		log.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
}

func (s *OrderService) validate(req domain.OrderRequest) (*domain.Order, error) {
	problems := domain.ValidationError{}
	order := &domain.Order{
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
		Address:   strings.TrimSpace(req.Address),
		Status:    "unprocessed",
	}

	for field, value := range map[string]string{
		"firstname": order.Firstname,
		"lastname":  order.Lastname,
		"address":   order.Address,
	} {
		if value == "" {
			problems[field] = "must not be blank"
		}
	}

	phone, err := s.normalizePhone(req.Phonenumber)
	if err != nil {
		problems["phonenumber"] = err.Error()
	}
	order.Phonenumber = phone

	if len(req.Products) == 0 {
		problems["products"] = "must not be empty"
	}
	for i, line := range req.Products {
		key := "products[" + strconv.Itoa(i) + "]"
		switch {
		case line.Product <= 0:
			problems[key] = "product must be a positive id"
		case line.Quantity < 1:
			problems[key] = "quantity must be at least 1"
		default:
			order.Lines = append(order.Lines, domain.OrderLine{ProductID: line.Product, Quantity: line.Quantity})
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return order, nil
}

func (s *OrderService) normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("must not be blank")
	}
	number, err := phonenumbers.Parse(raw, s.region)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", errors.New("not a valid phone number")
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}

func (s *OrderService) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Recalculate()
	order.QRCode = s.QRLink(order.ID)
	return order, nil
}

func (s *OrderService) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			if err := s.repo.SaveQRCode(ctx, orderID, regenerated); err != nil {
				log.WithError(err).WithField("order_id", orderID).Warn("failed to store regenerated qr code")
			}
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}
