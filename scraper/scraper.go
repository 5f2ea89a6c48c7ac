package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"books-scraper/fetcher"
	"books-scraper/models"
	"books-scraper/parser"
)

// PageURL returns the address of catalogue page n (1-based) under base
func PageURL(base string, n int) string {
	return fmt.Sprintf("%s/catalogue/page-%d.html", strings.TrimRight(base, "/"), n)
}

// Scraper walks catalogue pages one at a time
type Scraper struct {
	fetcher fetcher.Fetcher
	parser  *parser.Parser
	baseURL string
	delay   time.Duration
	sleep   func(ctx context.Context, d time.Duration)
	logger  *log.Logger
}

// Option configures a Scraper
type Option func(*Scraper)

// WithDelay sets the pause between consecutive page requests
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) {
		s.delay = d
	}
}

// WithLogger sets where progress and diagnostics go
func WithLogger(logger *log.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// WithSleep replaces the function used to wait between requests
func WithSleep(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(s *Scraper) {
		s.sleep = sleep
	}
}

// NewScraper creates a scraper for the catalogue rooted at baseURL
func NewScraper(f fetcher.Fetcher, p *parser.Parser, baseURL string, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher: f,
		parser:  p,
		baseURL: baseURL,
		delay:   time.Second,
		sleep:   sleepContext,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapePage fetches and parses a single page.
// Any failure is logged and yields no books so that later pages still run.
func (s *Scraper) ScrapePage(ctx context.Context, pageNum int) []models.Book {
	url := PageURL(s.baseURL, pageNum)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Printf("Error fetching page %d: %v\n", pageNum, err)
		return nil
	}

	books, err := s.parser.ParsePage(html, url)
	if err != nil {
		s.logger.Printf("Error parsing page %d: %v\n", pageNum, err)
		return nil
	}

	return books
}

// ScrapePages scrapes pages 1 through numPages in order, pausing between
// requests but not after the last one
func (s *Scraper) ScrapePages(ctx context.Context, numPages int) []models.Book {
	var allBooks []models.Book

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		s.logger.Printf("Scraping page %d...\n", pageNum)

		books := s.ScrapePage(ctx, pageNum)
		allBooks = append(allBooks, books...)

		s.logger.Printf("Found %d books on page %d\n", len(books), pageNum)

		if pageNum < numPages && s.delay > 0 {
			s.sleep(ctx, s.delay)
		}
	}

	return allBooks
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
