package service

import (
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"

	"github.com/pkg/errors"
)

var (
	ErrEmptyOrder     = errors.New("order has no product lines")
	ErrUnknownProduct = errors.New("order line references an unknown product")
)

// FeasibleRestaurants returns the restaurants of menu that currently sell every
// product of lines, in menu order. Quantities do not matter.
func FeasibleRestaurants(lines []domain.OrderLine, menu domain.Menu) ([]domain.Restaurant, error) {
	required, err := requiredProducts(lines, menu)
	if err != nil {
		return nil, err
	}

	covered := make(map[int]map[int]struct{}, len(menu.Restaurants))
	for _, entry := range menu.Entries {
		if !entry.Availability {
			continue
		}
		if _, ok := required[entry.ProductID]; !ok {
			continue
		}
		products, ok := covered[entry.RestaurantID]
		if !ok {
			products = make(map[int]struct{}, len(required))
			covered[entry.RestaurantID] = products
		}
		products[entry.ProductID] = struct{}{}
	}

	feasible := make([]domain.Restaurant, 0, len(menu.Restaurants))
	for _, restaurant := range menu.Restaurants {
		if len(covered[restaurant.ID]) == len(required) {
			feasible = append(feasible, restaurant)
		}
	}
	return feasible, nil
}

func requiredProducts(lines []domain.OrderLine, menu domain.Menu) (map[int]struct{}, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	known := make(map[int]struct{}, len(menu.Products))
	for _, product := range menu.Products {
		known[product.ID] = struct{}{}
	}

	required := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := known[line.ProductID]; !ok {
			return nil, errors.Wrapf(ErrUnknownProduct, "product %d", line.ProductID)
		}
		required[line.ProductID] = struct{}{}
	}
	return required, nil
}
