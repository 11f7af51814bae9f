package storage

import (
	"context"
	"database/sql"

	"github.com/devmanorg/star-burger/restaurateur-svc/internal/domain"
	"github.com/devmanorg/star-burger/restaurateur-svc/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, firstname, lastname, phonenumber, address, status, comment,
	payment_method, restaurant_id, created_at, called_at, delivered_at`

type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) LoadMenu(ctx context.Context) (domain.Menu, error) {
	tx, err := r.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return domain.Menu{}, errors.Wrap(err, "begin menu snapshot")
	}
	defer tx.Rollback()

	menu := domain.Menu{
		Restaurants: []domain.Restaurant{},
		Products:    []domain.Product{},
		Entries:     []domain.MenuEntry{},
	}
	if err := tx.SelectContext(ctx, &menu.Restaurants,
		`SELECT id, name, address, contact_phone FROM restaurants ORDER BY name, id`); err != nil {
		return domain.Menu{}, errors.Wrap(err, "select restaurants")
	}
	if err := tx.SelectContext(ctx, &menu.Products,
		`SELECT id, name, price FROM products ORDER BY id`); err != nil {
		return domain.Menu{}, errors.Wrap(err, "select products")
	}
	if err := tx.SelectContext(ctx, &menu.Entries,
		`SELECT restaurant_id, product_id, availability FROM menu_entries ORDER BY id`); err != nil {
		return domain.Menu{}, errors.Wrap(err, "select menu entries")
	}

	if err := tx.Commit(); err != nil {
		return domain.Menu{}, errors.Wrap(err, "commit menu snapshot")
	}
	return menu, nil
}

func (r *PostgresRepository) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := r.DB.SelectContext(ctx, &orders, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status <> ALL($1)
		ORDER BY created_at, id`,
		pq.Array([]string{string(domain.StatusCompleted), string(domain.StatusCancelled)}))
	if err != nil {
		return nil, errors.Wrap(err, "select open orders")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, order := range orders {
		ids[i] = int64(order.ID)
	}

	var lines []domain.OrderLine
	err = r.DB.SelectContext(ctx, &lines, `
		SELECT order_id, product_id, quantity, price
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "select order lines")
	}

	byOrder := make(map[int][]domain.OrderLine, len(orders))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	for i := range orders {
		attachLines(&orders[i], byOrder[orders[i].ID])
	}
	return orders, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.GetContext(ctx, &order, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select order %d", orderID)
	}

	var lines []domain.OrderLine
	err = r.DB.SelectContext(ctx, &lines, `
		SELECT order_id, product_id, quantity, price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "select lines of order %d", orderID)
	}

	attachLines(&order, lines)
	return &order, nil
}

func (r *PostgresRepository) ApplyTransition(ctx context.Context, t domain.Transition) (bool, error) {
	from := make([]string, len(t.From))
	for i, status := range t.From {
		from[i] = string(status)
	}

	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    restaurant_id = COALESCE($2, restaurant_id),
		    called_at = COALESCE($3, called_at),
		    delivered_at = COALESCE($4, delivered_at)
		WHERE id = $5 AND status = ANY($6)`,
		string(t.To), t.RestaurantID, t.CalledAt, t.DeliveredAt, t.OrderID, pq.Array(from))
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func attachLines(order *domain.Order, lines []domain.OrderLine) {
	order.Lines = lines
	if order.Lines == nil {
		order.Lines = []domain.OrderLine{}
	}
	order.Total = decimal.Zero
	for _, line := range order.Lines {
		order.Total = order.Total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
}

var _ service.DashboardRepository = (*PostgresRepository)(nil)
