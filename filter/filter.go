package filter

import (
	"math"

	"books-scraper/config"
	"books-scraper/models"
	"books-scraper/pricerange"
)

// Filter applies the configured price range to books
type Filter struct {
	cfg *config.Config
}

// NewFilter creates a new Filter instance
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		cfg: cfg,
	}
}

// ApplyFilters keeps the books whose price lies in the configured range
func (f *Filter) ApplyFilters(books []models.Book) []models.Book {
	return FilterByPrice(books, f.cfg.Filters.Min, f.cfg.Filters.Max)
}

// FilterByPrice keeps books priced within [minPrice, maxPrice], preserving order.
// Prices that cannot be parsed count as 0.
func FilterByPrice(books []models.Book, minPrice, maxPrice float64) []models.Book {
	r := pricerange.Range{Min: minPrice, Max: maxPrice}
	var filtered []models.Book

	for _, book := range books {
		if r.Contains(pricerange.NormalizePrice(book.Price)) {
			filtered = append(filtered, book)
		}
	}

	return filtered
}

// AveragePrice returns the mean normalized price rounded to 2 decimals, or 0 for no books
func AveragePrice(books []models.Book) float64 {
	if len(books) == 0 {
		return 0
	}

	var total float64
	for _, book := range books {
		total += pricerange.NormalizePrice(book.Price)
	}
	return math.Round(total/float64(len(books))*100) / 100
}

// Summary is the outcome of a run reported to the console and sinks
type Summary struct {
	TotalScraped  int
	TotalFiltered int
	AveragePrice  float64 // Of the filtered set
	Range         pricerange.Range
}

// Summarize computes the run statistics for the raw and filtered sets
func Summarize(raw, filtered []models.Book, r pricerange.Range) Summary {
	return Summary{
		TotalScraped:  len(raw),
		TotalFiltered: len(filtered),
		AveragePrice:  AveragePrice(filtered),
		Range:         r,
	}
}
