package service

import (
	"context"

	"github.com/devmanorg/star-burger/catalog-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int) (int64, error)
	SetAvailability(ctx context.Context, entry domain.MenuEntry) error
}

type OrderRepository interface {
	// CreateOrder stores the order and its lines in one transaction, copying
	// each line price from the product.
	CreateOrder(ctx context.Context, order *domain.Order) error
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, rest *domain.Restaurant) error
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.Restaurant, error)
	Update(ctx context.Context, rest *domain.Restaurant) error
	Delete(ctx context.Context, id int) error
}

type ProductServiceInterface interface {
	Create(ctx context.Context, product *domain.Product) error
	ListAvailable(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int) error
	SetAvailability(ctx context.Context, entry domain.MenuEntry) error
}

type OrderServiceInterface interface {
	Register(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
	QRLink(orderID int) string
}

var (
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
	_ ProductServiceInterface    = (*ProductService)(nil)
	_ OrderServiceInterface      = (*OrderService)(nil)
)
