package service

import (
	"context"

	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"
)

type DashboardServiceInterface interface {
	OpenOrders(ctx context.Context) ([]domain.RankedOrder, error)
	OrderCandidates(ctx context.Context, orderID int) (domain.RankedOrder, error)
	ProductAvailability(ctx context.Context) (domain.AvailabilityMatrix, error)
	Restaurants(ctx context.Context) ([]domain.Restaurant, error)
	AssignRestaurant(ctx context.Context, orderID, restaurantID int) error
	ChangeStatus(ctx context.Context, orderID int, status domain.OrderStatus) error
}

type DashboardRepository interface {
	// LoadMenu reads restaurants, products and menu entries from one snapshot.
	LoadMenu(ctx context.Context) (domain.Menu, error)
	ListOpenOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	// ApplyTransition reports false when the order was not in one of t.From.
	ApplyTransition(ctx context.Context, t domain.Transition) (bool, error)
}

type CandidateRanker interface {
	RankCandidates(ctx context.Context, order domain.Order, menu domain.Menu) (domain.RankedOrder, error)
	RankOrders(ctx context.Context, orders []domain.Order, menu domain.Menu) ([]domain.RankedOrder, error)
}

var _ DashboardServiceInterface = (*DashboardService)(nil)
