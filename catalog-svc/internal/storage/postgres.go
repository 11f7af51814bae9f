package storage

import (
	"context"
	"database/sql"

	"github.com/devmanorg/star-burger/catalog-svc/internal/domain"
	"github.com/devmanorg/star-burger/catalog-svc/internal/service"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO restaurants (name, address, contact_phone) VALUES ($1, $2, $3) RETURNING id, created_at",
		rest.Name, rest.Address, rest.ContactPhone,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, address, contact_phone, created_at
		FROM restaurants
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ContactPhone, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, contact_phone, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ContactPhone, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.DB.QueryRowContext(ctx,
		"UPDATE restaurants SET name=$1, address=$2, contact_phone=$3 WHERE id=$4 RETURNING created_at",
		rest.Name, rest.Address, rest.ContactPhone, rest.ID).
		Scan(&rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO products (name, category_id, price, image, special_status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		product.Name, product.CategoryID, product.Price, product.Image, product.SpecialStatus, product.Description).
		Scan(&product.ID)
	return translateConstraint(err)
}

// ListAvailableProducts returns products at least one restaurant currently sells.
func (r *PostgresRepository) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.name, p.category_id, COALESCE(c.name, ''), p.price, p.image, p.special_status, p.description
		FROM products p
		LEFT JOIN product_categories c ON c.id = p.category_id
		WHERE EXISTS (
			SELECT 1 FROM menu_entries m
			WHERE m.product_id = p.id AND m.availability
		)
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			product    domain.Product
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&product.ID, &product.Name, &categoryID, &product.Category,
			&product.Price, &product.Image, &product.SpecialStatus, &product.Description); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			id := int(categoryID.Int64)
			product.CategoryID = &id
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE products
		SET name=$1, category_id=$2, price=$3, image=$4, special_status=$5, description=$6
		WHERE id=$7`,
		product.Name, product.CategoryID, product.Price, product.Image, product.SpecialStatus, product.Description, product.ID)
	if err != nil {
		return translateConstraint(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SetAvailability(ctx context.Context, entry domain.MenuEntry) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO menu_entries (restaurant_id, product_id, availability)
		VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id) DO UPDATE SET availability = EXCLUDED.availability`,
		entry.RestaurantID, entry.ProductID, entry.Availability)
	return translateConstraint(err)
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (firstname, lastname, phonenumber, address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, order.Firstname, order.Lastname, order.Phonenumber, order.Address, order.Status).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, quantity, price)
			SELECT $1, p.id, $3, p.price FROM products p WHERE p.id = $2
			RETURNING price
		`, order.ID, line.ProductID, line.Quantity).Scan(&line.Price)
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(domain.ErrUnknownProduct, "product %d", line.ProductID)
		}
		if err != nil {
			return errors.Wrapf(err, "insert line for product %d", line.ProductID)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, firstname, lastname, phonenumber, address, status, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.Firstname, &order.Lastname, &order.Phonenumber,
		&order.Address, &order.Status, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.product_id, p.name, l.quantity, l.price
		FROM order_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.Lines = []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}
	return &order, rows.Err()
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qrCode []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qrCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return qrCode, nil
}

// translateConstraint reports a missing referenced row as ErrNotFound.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return errors.Wrap(domain.ErrNotFound, pqErr.Message)
	}
	return err
}

var (
	_ service.RestaurantRepository = (*PostgresRepository)(nil)
	_ service.ProductRepository    = (*PostgresRepository)(nil)
	_ service.OrderRepository      = (*PostgresRepository)(nil)
)
