package service

import (
	"context"
	"sort"

	"github.com/devmanorg/star-burger/geo"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultRankingWorkers = 4

type Ranker struct {
	geocoder geo.Resolver
	workers  int
}

func NewRanker(geocoder geo.Resolver, workers int) *Ranker {
	if workers <= 0 {
		workers = DefaultRankingWorkers
	}
	return &Ranker{geocoder: geocoder, workers: workers}
}

// RankCandidates orders the restaurants able to serve order by distance to its
// delivery address. Restaurants with an unknown distance come last, in menu
// order. Only a failing geocode store is reported as an error; geocoding
// failures leave distances unknown.
func (r *Ranker) RankCandidates(ctx context.Context, order domain.Order, menu domain.Menu) (domain.RankedOrder, error) {
	feasible, err := FeasibleRestaurants(order.Lines, menu)
	if err != nil {
		return domain.RankedOrder{Order: order, Candidates: []domain.Candidate{}}, err
	}

	located, err := r.resolveAll(ctx, addressesOf(order, feasible))
	if err != nil {
		return domain.RankedOrder{Order: order, Candidates: []domain.Candidate{}}, err
	}
	return rank(order, feasible, located), nil
}

// RankOrders ranks every order against the same menu, resolving each distinct
// address once. Orders the matcher rejects are flagged Invalid instead of
// failing the whole batch.
func (r *Ranker) RankOrders(ctx context.Context, orders []domain.Order, menu domain.Menu) ([]domain.RankedOrder, error) {
	feasible := make([][]domain.Restaurant, len(orders))
	invalid := make([]bool, len(orders))
	var addresses []string

	for i, order := range orders {
		restaurants, err := FeasibleRestaurants(order.Lines, menu)
		if err != nil {
			if !errors.Is(err, ErrEmptyOrder) && !errors.Is(err, ErrUnknownProduct) {
				return nil, err
			}
			log.WithError(err).WithField("order_id", order.ID).Warn("order cannot be matched")
			invalid[i] = true
			continue
		}
		feasible[i] = restaurants
		addresses = append(addresses, addressesOf(order, restaurants)...)
	}

	located, err := r.resolveAll(ctx, addresses)
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedOrder, len(orders))
	for i, order := range orders {
		if invalid[i] {
			ranked[i] = domain.RankedOrder{Order: order, Candidates: []domain.Candidate{}, Invalid: true}
			continue
		}
		ranked[i] = rank(order, feasible[i], located)
	}
	return ranked, nil
}

func addressesOf(order domain.Order, feasible []domain.Restaurant) []string {
	if len(feasible) == 0 {
		return nil
	}
	addresses := make([]string, 0, len(feasible)+1)
	addresses = append(addresses, order.Address)
	for _, restaurant := range feasible {
		addresses = append(addresses, restaurant.Address)
	}
	return addresses
}

func (r *Ranker) resolveAll(ctx context.Context, addresses []string) (map[string]*geo.Coordinates, error) {
	unique := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, address := range addresses {
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		unique = append(unique, address)
	}

	results := make([]*geo.Coordinates, len(unique))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, address := range unique {
		i, address := i, address
		group.Go(func() error {
			coords, err := r.geocoder.Resolve(groupCtx, address)
			if err != nil {
				return err
			}
			results[i] = coords
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	located := make(map[string]*geo.Coordinates, len(unique))
	for i, address := range unique {
		if coords := results[i]; coords != nil && coords.Valid() {
			located[address] = coords
		}
	}
	return located, nil
}

func rank(order domain.Order, feasible []domain.Restaurant, located map[string]*geo.Coordinates) domain.RankedOrder {
	ranked := domain.RankedOrder{Order: order, Candidates: make([]domain.Candidate, 0, len(feasible))}
	if len(feasible) == 0 {
		return ranked
	}

	origin := located[order.Address]
	ranked.AddressUnresolved = origin == nil

	for _, restaurant := range feasible {
		candidate := domain.Candidate{Restaurant: restaurant}
		if destination := located[restaurant.Address]; origin != nil && destination != nil {
			km := geo.Distance(*origin, *destination)
			candidate.DistanceKm = &km
		}
		ranked.Candidates = append(ranked.Candidates, candidate)
	}

	sort.SliceStable(ranked.Candidates, func(i, j int) bool {
		return closer(ranked.Candidates[i], ranked.Candidates[j])
	})
	return ranked
}

func closer(a, b domain.Candidate) bool {
	switch {
	case a.DistanceKm == nil:
		return false
	case b.DistanceKm == nil:
		return true
	default:
		return *a.DistanceKm < *b.DistanceKm
	}
}

var _ CandidateRanker = (*Ranker)(nil)
