package review

import (
	"context"
	"errors"

	"gamestore-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const reviewSelect = `
SELECT r.id::text, r.game_id::text, r.user_id::text, r.order_id::text, r.rating, r.comment,
       u.username, g.name, r.created_at
FROM reviews r
JOIN users u ON u.id = r.user_id
JOIN games g ON g.id = r.game_id
`

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (game_id, user_id, order_id, rating, comment)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	var id string
	err := r.pool.QueryRow(ctx, q, in.GameID, in.UserID, in.OrderID, in.Rating, in.Comment).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyReviewed
		}
		return nil, err
	}
	return r.getByID(ctx, id)
}

func (r *postgresRepo) ListByGame(ctx context.Context, gameID string) ([]domain.Review, error) {
	return r.list(ctx, reviewSelect+`WHERE r.game_id = $1 ORDER BY r.created_at DESC`, gameID)
}

func (r *postgresRepo) Summarize(ctx context.Context, gameID string) (*domain.ReviewSummary, error) {
	const q = `
SELECT COALESCE(AVG(rating), 0), COUNT(*)
FROM reviews
WHERE game_id = $1
`
	var s domain.ReviewSummary
	if err := r.pool.QueryRow(ctx, q, gameID).Scan(&s.AverageRating, &s.TotalReviews); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) GetByUserAndGame(ctx context.Context, userID, gameID string) (*domain.Review, error) {
	return r.get(ctx, reviewSelect+`WHERE r.user_id = $1 AND r.game_id = $2`, userID, gameID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.list(ctx, reviewSelect+`WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

func (r *postgresRepo) Update(ctx context.Context, id, userID string, rating int, comment string) (*domain.Review, error) {
	const q = `
UPDATE reviews
SET rating = $3, comment = $4
WHERE id = $1 AND user_id = $2
RETURNING id::text
`
	var updated string
	err := r.pool.QueryRow(ctx, q, id, userID, rating, comment).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.getByID(ctx, updated)
}

func (r *postgresRepo) Delete(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) getByID(ctx context.Context, id string) (*domain.Review, error) {
	return r.get(ctx, reviewSelect+`WHERE r.id = $1`, id)
}

func (r *postgresRepo) get(ctx context.Context, q string, args ...interface{}) (*domain.Review, error) {
	var rev domain.Review
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&rev.ID, &rev.GameID, &rev.UserID, &rev.OrderID, &rev.Rating, &rev.Comment,
		&rev.Username, &rev.GameName, &rev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID, &rev.GameID, &rev.UserID, &rev.OrderID, &rev.Rating, &rev.Comment,
			&rev.Username, &rev.GameName, &rev.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	return result, rows.Err()
}
