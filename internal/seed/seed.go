package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type gameSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Platform    string
	Category    string
	Company     string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	platforms := map[string]string{}
	for _, name := range []string{"PC", "PlayStation 5", "Nintendo Switch", "Xbox Series X"} {
		id, err := ensureLookup(ctx, pool, "platforms", name)
		if err != nil {
			return fmt.Errorf("ensure platform %s: %w", name, err)
		}
		platforms[name] = id
	}

	categories := map[string]string{}
	for _, name := range []string{"Action", "RPG", "Strategy", "Sports"} {
		id, err := ensureLookup(ctx, pool, "categories", name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categories[name] = id
	}

	companies := map[string]string{}
	for _, name := range []string{"Nintendo", "FromSoftware", "Valve"} {
		id, err := ensureLookup(ctx, pool, "companies", name)
		if err != nil {
			return fmt.Errorf("ensure company %s: %w", name, err)
		}
		companies[name] = id
	}

	sellerID, err := ensureSeller(ctx, pool, "demo-seller", "seller@gamestore.dev", "DemoSeller1")
	if err != nil {
		return fmt.Errorf("ensure seller: %w", err)
	}

	games := []gameSeed{
		{
			Name:        "Hyrule Quest",
			Description: "Open-world adventure across a ruined kingdom",
			PriceCents:  5999,
			Quantity:    25,
			Platform:    "Nintendo Switch",
			Category:    "Action",
			Company:     "Nintendo",
		},
		{
			Name:        "Ashen Ring",
			Description: "Punishing action RPG set in a fractured realm",
			PriceCents:  6999,
			Quantity:    15,
			Platform:    "PlayStation 5",
			Category:    "RPG",
			Company:     "FromSoftware",
		},
		{
			Name:        "Portal Storm",
			Description: "Physics puzzler with a sardonic AI narrator",
			PriceCents:  1999,
			Quantity:    40,
			Platform:    "PC",
			Category:    "Strategy",
			Company:     "Valve",
		},
	}

	for _, g := range games {
		if err := upsertGame(ctx, pool, sellerID, platforms[g.Platform], categories[g.Category], companies[g.Company], g); err != nil {
			return fmt.Errorf("upsert game %s: %w", g.Name, err)
		}
	}

	return nil
}

// ensureLookup works for the three name-only lookup tables, which share a shape.
func ensureLookup(ctx context.Context, pool *pgxpool.Pool, table, name string) (string, error) {
	q := fmt.Sprintf(`
INSERT INTO %s (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`, table)
	var id string
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureSeller(ctx context.Context, pool *pgxpool.Pool, username, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO users (username, email, password_hash, role)
VALUES ($1, $2, $3, 'seller')
ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, username, email, string(hash)).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertGame(ctx context.Context, pool *pgxpool.Pool, sellerID, platformID, categoryID, companyID string, g gameSeed) error {
	const q = `
INSERT INTO games (name, description, price_cents, quantity, seller_id, platform_id, category_id, company_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (seller_id, name) DO UPDATE
SET description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    quantity = EXCLUDED.quantity,
    platform_id = EXCLUDED.platform_id,
    category_id = EXCLUDED.category_id,
    company_id = EXCLUDED.company_id,
    active = TRUE
`
	_, err := pool.Exec(ctx, q, g.Name, g.Description, g.PriceCents, g.Quantity, sellerID, platformID, categoryID, companyID)
	return err
}
