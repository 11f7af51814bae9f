package service

import (
	"context"
	"strings"

	"github.com/devmanorg/star-burger/catalog-svc/internal/domain"
)

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	if err := validateRestaurant(rest); err != nil {
		return err
	}
	return s.repo.CreateRestaurant(ctx, rest)
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

func (s *RestaurantService) Update(ctx context.Context, rest *domain.Restaurant) error {
	if err := validateRestaurant(rest); err != nil {
		return err
	}
	return s.repo.UpdateRestaurant(ctx, rest)
}

func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func validateRestaurant(rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	rest.Address = strings.TrimSpace(rest.Address)
	if rest.Name == "" {
		return domain.ValidationError{"name": "must not be blank"}
	}
	return nil
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.repo.CreateProduct(ctx, product)
}

func (s *ProductService) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAvailableProducts(ctx)
}

func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.repo.UpdateProduct(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ProductService) SetAvailability(ctx context.Context, entry domain.MenuEntry) error {
	if entry.RestaurantID <= 0 || entry.ProductID <= 0 {
		return domain.ErrNotFound
	}
	return s.repo.SetAvailability(ctx, entry)
}

// Banners is the fixed storefront carousel. Images are served by the gateway
// under /static/.
func Banners() []domain.Banner {
	return []domain.Banner{
		{Title: "Burger", Src: "/static/burger.jpg", Text: "Tasty Burger at your door step"},
		{Title: "Spices", Src: "/static/food.jpg", Text: "All Cuisines"},
		{Title: "New York", Src: "/static/tasty.jpg", Text: "Food is incomplete without a tasty dessert"},
	}
}

func validateProduct(product *domain.Product) error {
	problems := domain.ValidationError{}
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		problems["name"] = "must not be blank"
	}
	if product.Price.IsNegative() {
		problems["price"] = "must not be negative"
	}
	if len(problems) > 0 {
		return problems
	}
	return nil
}
