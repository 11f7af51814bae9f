package service

import (
	"context"
	"time"

	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrRestaurantCannotServe = errors.New("restaurant cannot prepare every product of the order")
	ErrInvalidTransition     = errors.New("order status does not allow this change")
	ErrUnknownStatus         = errors.New("unknown order status")
)

// statusSources lists, per target status, the statuses an order may leave for
// it. Preparing is reached only through AssignRestaurant.
var statusSources = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusDelivering: {domain.StatusPreparing},
	domain.StatusCompleted:  {domain.StatusDelivering},
	domain.StatusCancelled:  {domain.StatusUnprocessed, domain.StatusPreparing},
}

type DashboardService struct {
	repository DashboardRepository
	ranker     CandidateRanker
	now        func() time.Time
}

func NewDashboardService(repository DashboardRepository, ranker CandidateRanker) *DashboardService {
	return &DashboardService{
		repository: repository,
		ranker:     ranker,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for called_at and delivered_at.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

func (s *DashboardService) OpenOrders(ctx context.Context) ([]domain.RankedOrder, error) {
	menu, err := s.repository.LoadMenu(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}

	orders, err := s.repository.ListOpenOrders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list open orders")
	}
	if len(orders) == 0 {
		return []domain.RankedOrder{}, nil
	}

	ranked, err := s.ranker.RankOrders(ctx, orders, menu)
	if err != nil {
		return nil, errors.Wrap(err, "rank open orders")
	}

	log.WithField("orders", len(ranked)).Debug("open orders ranked")
	return ranked, nil
}

func (s *DashboardService) OrderCandidates(ctx context.Context, orderID int) (domain.RankedOrder, error) {
	order, err := s.repository.GetOrder(ctx, orderID)
	if err != nil {
		return domain.RankedOrder{}, err
	}

	menu, err := s.repository.LoadMenu(ctx)
	if err != nil {
		return domain.RankedOrder{}, errors.Wrap(err, "load menu")
	}

	return s.ranker.RankCandidates(ctx, *order, menu)
}

func (s *DashboardService) ProductAvailability(ctx context.Context) (domain.AvailabilityMatrix, error) {
	menu, err := s.repository.LoadMenu(ctx)
	if err != nil {
		return domain.AvailabilityMatrix{}, errors.Wrap(err, "load menu")
	}

	column := make(map[int]int, len(menu.Restaurants))
	for i, restaurant := range menu.Restaurants {
		column[restaurant.ID] = i
	}

	rows := make(map[int][]bool, len(menu.Products))
	for _, product := range menu.Products {
		rows[product.ID] = make([]bool, len(menu.Restaurants))
	}
	for _, entry := range menu.Entries {
		row, ok := rows[entry.ProductID]
		if !ok {
			continue
		}
		if i, ok := column[entry.RestaurantID]; ok {
			row[i] = entry.Availability
		}
	}

	matrix := domain.AvailabilityMatrix{
		Restaurants: menu.Restaurants,
		Products:    make([]domain.ProductAvailability, 0, len(menu.Products)),
	}
	if matrix.Restaurants == nil {
		matrix.Restaurants = []domain.Restaurant{}
	}
	for _, product := range menu.Products {
		matrix.Products = append(matrix.Products, domain.ProductAvailability{
			Product:      product,
			Availability: rows[product.ID],
		})
	}
	return matrix, nil
}

func (s *DashboardService) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	menu, err := s.repository.LoadMenu(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load menu")
	}
	if menu.Restaurants == nil {
		return []domain.Restaurant{}, nil
	}
	return menu.Restaurants, nil
}

func (s *DashboardService) AssignRestaurant(ctx context.Context, orderID, restaurantID int) error {
	order, err := s.repository.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	menu, err := s.repository.LoadMenu(ctx)
	if err != nil {
		return errors.Wrap(err, "load menu")
	}

	feasible, err := FeasibleRestaurants(order.Lines, menu)
	if err != nil {
		return err
	}
	if !containsRestaurant(feasible, restaurantID) {
		return ErrRestaurantCannotServe
	}

	calledAt := s.now()
	applied, err := s.repository.ApplyTransition(ctx, domain.Transition{
		OrderID:      orderID,
		From:         []domain.OrderStatus{domain.StatusUnprocessed},
		To:           domain.StatusPreparing,
		RestaurantID: &restaurantID,
		CalledAt:     &calledAt,
	})
	if err != nil {
		return errors.Wrapf(err, "assign order %d", orderID)
	}
	if !applied {
		return ErrInvalidTransition
	}

	log.WithFields(log.Fields{"order_id": orderID, "restaurant_id": restaurantID}).Info("order assigned to restaurant")
	return nil
}

func (s *DashboardService) ChangeStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	switch status {
	case domain.StatusUnprocessed, domain.StatusPreparing, domain.StatusDelivering,
		domain.StatusCompleted, domain.StatusCancelled:
	default:
		return errors.Wrapf(ErrUnknownStatus, "%q", status)
	}

	from, ok := statusSources[status]
	if !ok {
		return ErrInvalidTransition
	}

	transition := domain.Transition{OrderID: orderID, From: from, To: status}
	if status == domain.StatusCompleted {
		deliveredAt := s.now()
		transition.DeliveredAt = &deliveredAt
	}

	applied, err := s.repository.ApplyTransition(ctx, transition)
	if err != nil {
		return errors.Wrapf(err, "move order %d to %s", orderID, status)
	}
	if !applied {
		return ErrInvalidTransition
	}

	log.WithFields(log.Fields{"order_id": orderID, "status": status}).Info("order status changed")
	return nil
}

func containsRestaurant(restaurants []domain.Restaurant, id int) bool {
	for _, restaurant := range restaurants {
		if restaurant.ID == id {
			return true
		}
	}
	return false
}
