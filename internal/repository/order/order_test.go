package order

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"gamestore-api/internal/domain"
	"gamestore-api/internal/migrate"
	cartrepo "gamestore-api/internal/repository/cart"
	gamerepo "gamestore-api/internal/repository/game"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

type fixture struct {
	pool    *pgxpool.Pool
	repo    Repository
	buyerID string
	cartID  string
	game    *domain.Game
}

func setup(ctx context.Context, t *testing.T, price int64, stock int) *fixture {
	t.Helper()
	pool := testPool(ctx, t)
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE reviews, order_items, orders, cart_items, carts, game_images, games, companies, categories, platforms, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	logger := log.New(io.Discard, "", 0)

	var buyerID, sellerID string
	if err := pool.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, role) VALUES ('buyer1', 'buyer1@test.dev', 'x', 'buyer') RETURNING id::text`).Scan(&buyerID); err != nil {
		t.Fatalf("insert buyer: %v", err)
	}
	if err := pool.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, role) VALUES ('seller1', 'seller1@test.dev', 'x', 'seller') RETURNING id::text`).Scan(&sellerID); err != nil {
		t.Fatalf("insert seller: %v", err)
	}

	game, err := gamerepo.NewPostgres(pool, logger).Create(ctx, gamerepo.CreateInput{
		Name:       "Hyrule Quest",
		PriceCents: price,
		Quantity:   stock,
		SellerID:   sellerID,
	})
	if err != nil {
		t.Fatalf("insert game: %v", err)
	}

	carts := cartrepo.NewPostgres(pool)
	cart, err := carts.Create(ctx, buyerID)
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}

	return &fixture{
		pool:    pool,
		repo:    NewPostgres(pool, logger),
		buyerID: buyerID,
		cartID:  cart.ID,
		game:    game,
	}
}

func orderInput(f *fixture, quantity int) CreateInput {
	subtotal := f.game.PriceCents * int64(quantity)
	return CreateInput{
		UserID:        f.buyerID,
		CartID:        f.cartID,
		PaymentMethod: domain.PaymentCard,
		TotalCents:    subtotal,
		Items: []domain.OrderItem{{
			GameID:         f.game.ID,
			GameName:       f.game.Name,
			SellerID:       f.game.SellerID,
			Quantity:       quantity,
			UnitPriceCents: f.game.PriceCents,
			SubtotalCents:  subtotal,
		}},
	}
}

func TestPostgres_CreateFromCartDecrementsStock(t *testing.T) {
	ctx := context.Background()
	f := setup(ctx, t, 1999, 10)

	order, err := f.repo.CreateFromCart(ctx, orderInput(f, 3))
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}
	if len(order.Items) != 1 || order.TotalCents != 3*1999 {
		t.Fatalf("unexpected order %+v", order)
	}

	var remaining int
	if err := f.pool.QueryRow(ctx, `SELECT quantity FROM games WHERE id = $1`, f.game.ID).Scan(&remaining); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	if remaining != 7 {
		t.Fatalf("expected 7 units left, got %d", remaining)
	}
}

func TestPostgres_CreateFromCartInsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	f := setup(ctx, t, 1999, 2)

	_, err := f.repo.CreateFromCart(ctx, orderInput(f, 3))
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	var ise *domain.InsufficientStockError
	if !errors.As(err, &ise) || ise.Available != 2 {
		t.Fatalf("expected available=2 in error, got %v", err)
	}

	// Nothing committed: no order rows, stock unchanged.
	var orderCount, remaining int
	if err := f.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&orderCount); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if err := f.pool.QueryRow(ctx, `SELECT quantity FROM games WHERE id = $1`, f.game.ID).Scan(&remaining); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	if orderCount != 0 || remaining != 2 {
		t.Fatalf("expected rollback, got orders=%d stock=%d", orderCount, remaining)
	}
}

func TestPostgres_CreateFromCartClearsCart(t *testing.T) {
	ctx := context.Background()
	f := setup(ctx, t, 1999, 10)

	carts := cartrepo.NewPostgres(f.pool)
	if err := carts.UpsertItem(ctx, f.cartID, *f.game, 2); err != nil {
		t.Fatalf("fill cart: %v", err)
	}

	if _, err := f.repo.CreateFromCart(ctx, orderInput(f, 2)); err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}

	cart, err := carts.GetByUser(ctx, f.buyerID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(cart.Items) != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected cleared cart, got %+v", cart)
	}
}

func TestPostgres_ContainsGame(t *testing.T) {
	ctx := context.Background()
	f := setup(ctx, t, 1999, 10)

	order, err := f.repo.CreateFromCart(ctx, orderInput(f, 1))
	if err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}

	got, err := f.repo.ContainsGame(ctx, order.ID, f.buyerID, f.game.ID)
	if err != nil {
		t.Fatalf("ContainsGame: %v", err)
	}
	if !got {
		t.Fatal("expected order to contain game for buyer")
	}

	got, err = f.repo.ContainsGame(ctx, order.ID, f.game.SellerID, f.game.ID)
	if err != nil {
		t.Fatalf("ContainsGame other user: %v", err)
	}
	if got {
		t.Fatal("expected false for a different user")
	}
}

func TestPostgres_ListSales(t *testing.T) {
	ctx := context.Background()
	f := setup(ctx, t, 1999, 10)

	if _, err := f.repo.CreateFromCart(ctx, orderInput(f, 2)); err != nil {
		t.Fatalf("CreateFromCart: %v", err)
	}

	rows, err := f.repo.ListSales(ctx, f.game.SellerID, SalesFilter{})
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 sale row, got %d", len(rows))
	}
	row := rows[0]
	if row.Buyer != "buyer1" || row.Quantity != 2 || row.SubtotalCents != 2*1999 {
		t.Fatalf("unexpected sale row %+v", row)
	}

	// Another seller sees nothing.
	rows, err = f.repo.ListSales(ctx, f.buyerID, SalesFilter{})
	if err != nil {
		t.Fatalf("ListSales other: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
