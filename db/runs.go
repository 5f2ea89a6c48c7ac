package db

import (
	"context"
	"fmt"

	"books-scraper/filter"
	"books-scraper/models"
	"books-scraper/pricerange"
)

// Run describes one scraping run to be stored
type Run struct {
	BaseURL string
	Pages   int
	Summary filter.Summary
	Books   []models.Book // Every scraped book, in scrape order
}

// SaveRun stores the run and all of its books in one transaction and
// returns the run ID
func (db *DB) SaveRun(ctx context.Context, run Run) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s := run.Summary
	var runID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO scrape_runs (base_url, pages, min_price, max_price, total_scraped, total_filtered, average_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, run.BaseURL, run.Pages, s.Range.Min, s.Range.Max, s.TotalScraped, s.TotalFiltered, s.AveragePrice).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO books (run_id, position, title, price_text, price, availability, url, in_range)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare book insert: %w", err)
	}
	defer stmt.Close()

	for i, book := range run.Books {
		price := pricerange.NormalizePrice(book.Price)
		_, err := stmt.ExecContext(ctx, runID, i+1, book.Title, book.Price, price, book.Availability, book.URL, s.Range.Contains(price))
		if err != nil {
			return 0, fmt.Errorf("failed to insert book %s: %w", book.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}
