package order

import (
	"context"
	"errors"
	"io"
	"log"

	"gamestore-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, in CreateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var order domain.Order
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total_cents, payment_method)
VALUES ($1, $2, $3)
RETURNING id::text, user_id::text, total_cents, payment_method, created_at
`, in.UserID, in.TotalCents, in.PaymentMethod).Scan(
		&order.ID, &order.UserID, &order.TotalCents, &order.PaymentMethod, &order.CreatedAt,
	); err != nil {
		return nil, err
	}

	for _, item := range in.Items {
		// Guarded decrement: stock never goes negative, and an order can
		// never commit more units than remain at this instant.
		cmd, err := tx.Exec(ctx, `
UPDATE games SET quantity = quantity - $2 WHERE id = $1 AND quantity >= $2
`, item.GameID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			available := 0
			_ = tx.QueryRow(ctx, `SELECT quantity FROM games WHERE id = $1`, item.GameID).Scan(&available)
			return nil, &domain.InsufficientStockError{GameName: item.GameName, Available: available}
		}

		var saved domain.OrderItem
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, game_id, game_name, seller_id, quantity, unit_price_cents, subtotal_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text
`, order.ID, item.GameID, item.GameName, item.SellerID, item.Quantity, item.UnitPriceCents, item.SubtotalCents).Scan(&saved.ID); err != nil {
			return nil, err
		}
		saved.GameID = item.GameID
		saved.GameName = item.GameName
		saved.SellerID = item.SellerID
		saved.Quantity = item.Quantity
		saved.UnitPriceCents = item.UnitPriceCents
		saved.SubtotalCents = item.SubtotalCents
		order.Items = append(order.Items, saved)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, in.CartID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
UPDATE carts SET total_cents = 0, updated_at = now() WHERE id = $1
`, in.CartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user=%s lines=%d total=%d", order.ID, order.UserID, len(order.Items), order.TotalCents)
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, total_cents, payment_method, created_at
FROM orders
WHERE id = $1
`
	var order domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&order.ID, &order.UserID, &order.TotalCents, &order.PaymentMethod, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.fetchItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return &order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, total_cents, payment_method, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.listOrders(ctx, q, userID)
}

func (r *postgresRepo) ContainsGame(ctx context.Context, orderID, userID, gameID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.id
	WHERE o.id = $1 AND o.user_id = $2 AND oi.game_id = $3
)
`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, orderID, userID, gameID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *postgresRepo) ListSales(ctx context.Context, sellerID string, f SalesFilter) ([]SaleRow, error) {
	q := `
SELECT o.id::text, u.username, oi.game_name, oi.quantity, oi.unit_price_cents, oi.subtotal_cents, o.created_at
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
JOIN users u ON u.id = o.user_id
WHERE oi.seller_id = $1
`
	args := []interface{}{sellerID}
	if f.From != nil {
		args = append(args, *f.From)
		q += ` AND o.created_at >= $2`
	}
	if f.To != nil {
		args = append(args, *f.To)
		if f.From != nil {
			q += ` AND o.created_at <= $3`
		} else {
			q += ` AND o.created_at <= $2`
		}
	}
	q += ` ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SaleRow
	for rows.Next() {
		var s SaleRow
		if err := rows.Scan(&s.OrderID, &s.Buyer, &s.GameName, &s.Quantity, &s.UnitPriceCents, &s.SubtotalCents, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, arg string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT order_id::text, id::text, game_id::text, game_name, seller_id::text, quantity, unit_price_cents, subtotal_cents
FROM order_items
WHERE order_id = ANY($1)
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var orderID string
		var it domain.OrderItem
		if err := rows.Scan(&orderID, &it.ID, &it.GameID, &it.GameName, &it.SellerID, &it.Quantity, &it.UnitPriceCents, &it.SubtotalCents); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], it)
	}
	return items, rows.Err()
}
