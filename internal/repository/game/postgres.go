package game

import (
	"context"
	"errors"
	"io"
	"log"

	"gamestore-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const gameSelect = `
SELECT g.id::text, g.name, COALESCE(g.description, ''), g.price_cents, g.quantity,
       g.seller_id::text, u.username,
       COALESCE(g.platform_id::text, ''), COALESCE(p.name, ''),
       COALESCE(g.category_id::text, ''), COALESCE(c.name, ''),
       COALESCE(g.company_id::text, ''), COALESCE(co.name, ''),
       g.active, g.created_at,
       COALESCE((SELECT array_agg(gi.filename ORDER BY gi.position) FROM game_images gi WHERE gi.game_id = g.id), '{}')
FROM games g
JOIN users u ON u.id = g.seller_id
LEFT JOIN platforms p ON p.id = g.platform_id
LEFT JOIN categories c ON c.id = g.category_id
LEFT JOIN companies co ON co.id = g.company_id
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Game, error) {
	rows, err := r.pool.Query(ctx, gameSelect+`WHERE g.active ORDER BY g.created_at DESC`)
	if err != nil {
		r.logger.Printf("game repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("game repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	row := r.pool.QueryRow(ctx, gameSelect+`WHERE g.id = $1`, id)
	g, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("game repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return g, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Game, error) {
	const q = `
INSERT INTO games (name, description, price_cents, quantity, seller_id, platform_id, category_id, company_id)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, '')::uuid, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid)
RETURNING id::text
`
	return r.insert(ctx, q, in)
}

func (r *postgresRepo) UpsertByName(ctx context.Context, in CreateInput) (*domain.Game, error) {
	const q = `
INSERT INTO games (name, description, price_cents, quantity, seller_id, platform_id, category_id, company_id)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, '')::uuid, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid)
ON CONFLICT (seller_id, name) DO UPDATE SET
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    quantity    = EXCLUDED.quantity,
    platform_id = EXCLUDED.platform_id,
    category_id = EXCLUDED.category_id,
    company_id  = EXCLUDED.company_id,
    active      = TRUE
RETURNING id::text
`
	return r.insert(ctx, q, in)
}

func (r *postgresRepo) insert(ctx context.Context, q string, in CreateInput) (*domain.Game, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id string
	if err := tx.QueryRow(ctx, q,
		in.Name, in.Description, in.PriceCents, in.Quantity,
		in.SellerID, in.PlatformID, in.CategoryID, in.CompanyID,
	).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM game_images WHERE game_id = $1`, id); err != nil {
		return nil, err
	}
	for pos, filename := range in.Images {
		if _, err := tx.Exec(ctx, `
INSERT INTO game_images (game_id, filename, position) VALUES ($1, $2, $3)
`, id, filename, pos); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE games SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	if err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.PriceCents, &g.Quantity,
		&g.SellerID, &g.SellerName,
		&g.PlatformID, &g.Platform,
		&g.CategoryID, &g.Category,
		&g.CompanyID, &g.Company,
		&g.Active, &g.CreatedAt,
		&g.Images,
	); err != nil {
		return nil, err
	}
	return &g, nil
}
