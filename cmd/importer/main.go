package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gamestore-api/internal/config"
	"gamestore-api/internal/db"
	"gamestore-api/internal/domain"
	"gamestore-api/internal/importer"
	gamerepo "gamestore-api/internal/repository/game"
	userrepo "gamestore-api/internal/repository/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	var (
		filePath    string
		sellerEmail string
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.StringVar(&sellerEmail, "seller", "", "Email of the seller to import games for")
	flag.Parse()

	if filePath == "" || sellerEmail == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool, logger)
	seller, err := users.GetByEmail(ctx, sellerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Fatalf("no seller registered with email %q", sellerEmail)
		}
		logger.Fatalf("look up seller %q: %v", sellerEmail, err)
	}
	if seller.Role != domain.RoleSeller {
		logger.Fatalf("user %q is not a seller", sellerEmail)
	}

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, gamerepo.NewPostgres(pool, logger), seller.ID, lookupResolver(pool))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d games for seller %s in %s\n", count, sellerEmail, time.Since(start).Truncate(time.Millisecond))
}

// lookupResolver creates missing platform/category/company rows on the fly
// so a catalog export does not need pre-seeded lookups.
func lookupResolver(pool *pgxpool.Pool) importer.ResolveFunc {
	return func(ctx context.Context, kind, name string) (string, error) {
		q := fmt.Sprintf(`
INSERT INTO %s (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`, kind)
		var id string
		if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
			return "", err
		}
		return id, nil
	}
}
