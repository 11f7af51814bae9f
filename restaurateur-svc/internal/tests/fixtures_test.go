package tests

import (
	"github.com/devmanorg/star-burger/geo"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	burgerID    = 10
	friesID     = 20
	milkshakeID = 30
	pieID       = 40

	redSquare = "Москва, Красная площадь, 1"
	arbat     = "Москва, Арбат, 1"
	tverskaya = "Москва, Тверская, 10"
	sokol     = "Москва, Ленинградский проспект, 75"
)

var (
	arbatRestaurant     = domain.Restaurant{ID: 1, Name: "Star Burger Арбат", Address: arbat}
	tverskayaRestaurant = domain.Restaurant{ID: 2, Name: "Star Burger Тверская", Address: tverskaya}
	sokolRestaurant     = domain.Restaurant{ID: 3, Name: "Star Burger Сокол", Address: sokol}

	redSquareCoords = &geo.Coordinates{Lat: 55.7539, Lon: 37.6208}
	arbatCoords     = &geo.Coordinates{Lat: 55.7520, Lon: 37.5925}
	tverskayaCoords = &geo.Coordinates{Lat: 55.7640, Lon: 37.6060}
	sokolCoords     = &geo.Coordinates{Lat: 55.8050, Lon: 37.5150}
)

// testMenu: Арбат sells burger and fries, Тверская has fries switched off but
// sells milkshakes, Сокол sells everything but pie. Nobody sells pie.
func testMenu() domain.Menu {
	return domain.Menu{
		Restaurants: []domain.Restaurant{arbatRestaurant, tverskayaRestaurant, sokolRestaurant},
		Products: []domain.Product{
			{ID: burgerID, Name: "Чизбургер", Price: decimal.RequireFromString("350.00")},
			{ID: friesID, Name: "Картофель фри", Price: decimal.RequireFromString("120.00")},
			{ID: milkshakeID, Name: "Молочный коктейль", Price: decimal.RequireFromString("200.00")},
			{ID: pieID, Name: "Вишнёвый пирожок", Price: decimal.RequireFromString("90.00")},
		},
		Entries: []domain.MenuEntry{
			{RestaurantID: 1, ProductID: burgerID, Availability: true},
			{RestaurantID: 1, ProductID: friesID, Availability: true},
			{RestaurantID: 2, ProductID: burgerID, Availability: true},
			{RestaurantID: 2, ProductID: friesID, Availability: false},
			{RestaurantID: 2, ProductID: milkshakeID, Availability: true},
			{RestaurantID: 3, ProductID: burgerID, Availability: true},
			{RestaurantID: 3, ProductID: friesID, Availability: true},
			{RestaurantID: 3, ProductID: milkshakeID, Availability: true},
		},
	}
}

func linesOf(productIDs ...int) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(productIDs))
	for _, id := range productIDs {
		lines = append(lines, domain.OrderLine{ProductID: id, Quantity: 1})
	}
	return lines
}

func orderWith(id int, address string, productIDs ...int) domain.Order {
	return domain.Order{
		ID:          id,
		Firstname:   "Иван",
		Lastname:    "Петров",
		Phonenumber: "+79161234567",
		Address:     address,
		Status:      domain.StatusUnprocessed,
		Lines:       linesOf(productIDs...),
	}
}

func restaurantIDs(restaurants []domain.Restaurant) []int {
	ids := make([]int, 0, len(restaurants))
	for _, restaurant := range restaurants {
		ids = append(ids, restaurant.ID)
	}
	return ids
}

func candidateIDs(candidates []domain.Candidate) []int {
	ids := make([]int, 0, len(candidates))
	for _, candidate := range candidates {
		ids = append(ids, candidate.Restaurant.ID)
	}
	return ids
}
