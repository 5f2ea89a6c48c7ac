package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"books-scraper/config"
	"books-scraper/db"
	"books-scraper/fetcher"
	"books-scraper/filter"
	"books-scraper/models"
	"books-scraper/output"
	"books-scraper/parser"
	"books-scraper/scraper"
	"books-scraper/sheets"
)

// sinkOptions are the optional destinations besides the CSV files
type sinkOptions struct {
	spreadsheetURL  string
	credentialsPath string
	databaseURL     string
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	baseURL := flag.String("url", "", "Base URL of the catalogue site")
	pages := flag.Int("pages", 0, "Number of catalogue pages to scrape")
	minPrice := flag.Float64("min-price", 0, "Minimum price, inclusive")
	maxPrice := flag.Float64("max-price", 0, "Maximum price, inclusive")
	delay := flag.Duration("delay", 0, "Pause between page requests")
	timeout := flag.Duration("timeout", 0, "Per-request timeout")
	fetcherKind := flag.String("fetcher", "", "Page fetcher: colly or rod")
	parserKind := flag.String("parser", "", "HTML parser backend: goquery or htmlquery")
	rawFile := flag.String("raw", "", "Output file for all scraped books")
	filteredFile := flag.String("filtered", "", "Output file for books within the price range")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to also export results to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	databaseURL := flag.String("database", "", "PostgreSQL connection string for run history (or use DATABASE_URL env var)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "url":
			cfg.BaseURL = *baseURL
		case "pages":
			cfg.Pages = *pages
		case "min-price":
			cfg.Filters.Min = *minPrice
		case "max-price":
			cfg.Filters.Max = *maxPrice
		case "delay":
			cfg.Delay = *delay
		case "timeout":
			cfg.Timeout = *timeout
		case "fetcher":
			cfg.Fetcher = *fetcherKind
		case "parser":
			cfg.Parser = *parserKind
		case "raw":
			cfg.Output.RawFile = *rawFile
		case "filtered":
			cfg.Output.FilteredFile = *filteredFile
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	sinks := sinkOptions{
		spreadsheetURL:  *spreadsheetURL,
		credentialsPath: *credentialsPath,
		databaseURL:     *databaseURL,
	}
	if err := run(context.Background(), cfg, sinks); err != nil {
		log.Fatalf("Scraping failed: %v\n", err)
	}
}

// run performs one full scrape. Only setup problems are returned; page,
// item and output failures are logged and the run carries on.
func run(ctx context.Context, cfg *config.Config, sinks sinkOptions) error {
	load, err := parser.LoaderFor(cfg.Parser)
	if err != nil {
		return err
	}

	f, closeFetcher, err := fetcher.New(cfg.Fetcher, fetcher.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}
	defer func() {
		if err := closeFetcher(); err != nil {
			log.Printf("Warning: Failed to close fetcher: %v\n", err)
		}
	}()

	s := scraper.NewScraper(f, parser.NewParser(parser.WithLoader(load)), cfg.BaseURL,
		scraper.WithDelay(cfg.Delay),
	)

	fmt.Println("Starting web scraping...")
	fmt.Println(strings.Repeat("-", 50))

	allBooks := s.ScrapePages(ctx, cfg.Pages)

	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Total books scraped: %d\n", len(allBooks))

	output.SaveBooks(cfg.Output.RawFile, allBooks)

	filteredBooks := filter.NewFilter(cfg).ApplyFilters(allBooks)
	output.SaveBooks(cfg.Output.FilteredFile, filteredBooks)

	summary := filter.Summarize(allBooks, filteredBooks, cfg.Filters)
	printSummary(summary)

	if sinks.spreadsheetURL != "" {
		exportToSheets(ctx, sinks, cfg, summary, allBooks, filteredBooks)
	}
	if db.Configured(sinks.databaseURL) {
		saveRunHistory(ctx, sinks.databaseURL, cfg, summary, allBooks)
	}

	return nil
}

func printSummary(s filter.Summary) {
	fmt.Println(strings.Repeat("-", 50))
	fmt.Println("SUMMARY")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Total books scraped: %d\n", s.TotalScraped)
	fmt.Printf("Total after filtering (%s): %d\n", s.Range.Label(), s.TotalFiltered)
	fmt.Printf("Average price of filtered set: £%.2f\n", s.AveragePrice)
	fmt.Println(strings.Repeat("-", 50))
}

// exportToSheets writes the raw and filtered sets to two new tabs
func exportToSheets(ctx context.Context, sinks sinkOptions, cfg *config.Config, s filter.Summary, raw, filtered []models.Book) {
	spreadsheetID := sheets.ExtractSpreadsheetID(sinks.spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", sinks.spreadsheetURL)
		return
	}

	writer, err := sheets.NewWriter(ctx, spreadsheetID, sinks.credentialsPath)
	if err != nil {
		log.Printf("Warning: Failed to initialize Google Sheets writer: %v\n", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	metadata := []string{
		"URL", cfg.BaseURL,
		"Range", s.Range.Label(),
		"Scraped", fmt.Sprint(s.TotalScraped),
		"Filtered", fmt.Sprint(s.TotalFiltered),
		"Average", fmt.Sprintf("%.2f", s.AveragePrice),
	}

	sets := []struct {
		name  string
		books []models.Book
	}{
		{"raw_" + stamp, raw},
		{"filtered_" + stamp, filtered},
	}
	for _, set := range sets {
		if len(set.books) == 0 {
			log.Printf("No data to export to sheet %s\n", set.name)
			continue
		}
		if _, _, err := writer.CreateSheetAndWriteBooks(ctx, set.name, set.books, metadata); err != nil {
			log.Printf("Warning: Failed to write to Google Sheets: %v\n", err)
		}
	}
}

// saveRunHistory records the run in PostgreSQL
func saveRunHistory(ctx context.Context, connStr string, cfg *config.Config, s filter.Summary, books []models.Book) {
	database, err := db.NewDB(ctx, connStr)
	if err != nil {
		log.Printf("Warning: Failed to connect to database: %v\n", err)
		return
	}
	defer database.Close()

	runID, err := database.SaveRun(ctx, db.Run{
		BaseURL: cfg.BaseURL,
		Pages:   cfg.Pages,
		Summary: s,
		Books:   books,
	})
	if err != nil {
		log.Printf("Warning: Failed to save run history: %v\n", err)
		return
	}
	log.Printf("Saved run %d with %d books to database\n", runID, len(books))
}
