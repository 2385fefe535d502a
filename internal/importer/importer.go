package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gamestore-api/internal/domain"
	gamerepo "gamestore-api/internal/repository/game"
)

type GameWriter interface {
	UpsertByName(ctx context.Context, in gamerepo.CreateInput) (*domain.Game, error)
}

// ResolveFunc maps a lookup name (platform, category, company) onto its
// row id, creating the row when it does not exist yet.
type ResolveFunc func(ctx context.Context, kind, name string) (string, error)

// CSVImporter reads catalog CSV exports and inserts/updates games for a
// single seller.
type CSVImporter struct {
	reader   *csv.Reader
	games    GameWriter
	sellerID string
	resolve  ResolveFunc
}

func NewCSVImporter(r io.Reader, repo GameWriter, sellerID string, resolve ResolveFunc) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		games:    repo,
		sellerID: sellerID,
		resolve:  resolve,
	}
}

type csvRow struct {
	Name       string
	Desc       string
	PriceCents int64
	Quantity   int
	Platform   string
	Category   string
	Company    string
	Images     []string
}

// Run parses CSV rows and upserts games. Rows with an empty name column
// are image continuation rows for the preceding game.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current game.
		if current != nil && len(row.Images) > 0 {
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" || row.PriceCents <= 0 {
		return fmt.Errorf("invalid game row (missing name or price) for %q", row.Name)
	}

	in := gamerepo.CreateInput{
		Name:        row.Name,
		Description: row.Desc,
		PriceCents:  row.PriceCents,
		Quantity:    row.Quantity,
		SellerID:    i.sellerID,
		Images:      row.Images,
	}

	var err error
	if row.Platform != "" {
		if in.PlatformID, err = i.resolve(ctx, "platforms", row.Platform); err != nil {
			return fmt.Errorf("resolve platform %q: %w", row.Platform, err)
		}
	}
	if row.Category != "" {
		if in.CategoryID, err = i.resolve(ctx, "categories", row.Category); err != nil {
			return fmt.Errorf("resolve category %q: %w", row.Category, err)
		}
	}
	if row.Company != "" {
		if in.CompanyID, err = i.resolve(ctx, "companies", row.Company); err != nil {
			return fmt.Errorf("resolve company %q: %w", row.Company, err)
		}
	}

	if _, err := i.games.UpsertByName(ctx, in); err != nil {
		return fmt.Errorf("upsert game %q: %w", row.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	desc := pick(record, index, "description")
	centStr := pick(record, index, "priceCents")
	qtyStr := pick(record, index, "quantity")
	platform := pick(record, index, "platform")
	category := pick(record, index, "category")
	company := pick(record, index, "company")
	image := pick(record, index, "image")

	if name == "" && image == "" {
		return nil
	}

	var cents int64
	if centStr != "" {
		cents, _ = strconv.ParseInt(centStr, 10, 64)
	}
	var qty int
	if qtyStr != "" {
		qty, _ = strconv.Atoi(qtyStr)
	}

	row := &csvRow{
		Name:       name,
		Desc:       desc,
		PriceCents: cents,
		Quantity:   qty,
		Platform:   platform,
		Category:   category,
		Company:    company,
	}
	if image != "" {
		row.Images = []string{strings.TrimSpace(image)}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
