package filter

import (
	"fmt"
	"testing"

	"books-scraper/config"
	"books-scraper/models"
	"books-scraper/pricerange"
)

func booksWithPrices(prices ...string) []models.Book {
	books := make([]models.Book, 0, len(prices))
	for i, p := range prices {
		books = append(books, models.Book{
			Title: fmt.Sprintf("Book %d", i+1),
			Price: p,
			URL:   fmt.Sprintf("http://example.com/catalogue/book_%d/index.html", i+1),
		})
	}
	return books
}

func TestFilterByPrice(t *testing.T) {
	books := booksWithPrices("£5.00", "£10.00", "£25.00", "£50.00", "£75.00")

	got := FilterByPrice(books, 10.0, 50.0)

	want := []string{"Book 2", "Book 3", "Book 4"}
	if len(got) != len(want) {
		t.Fatalf("FilterByPrice() kept %d books, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("got[%d].Title = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestFilterByPrice_UnparsablePriceIsZero(t *testing.T) {
	books := booksWithPrices("n/a", "£12.00")

	if got := FilterByPrice(books, 10, 50); len(got) != 1 || got[0].Title != "Book 2" {
		t.Errorf("FilterByPrice() = %+v", got)
	}
	if got := FilterByPrice(books, 0, 5); len(got) != 1 || got[0].Title != "Book 1" {
		t.Errorf("zero-priced book should pass a range starting at 0, got %+v", got)
	}
}

func TestFilterByPrice_Empty(t *testing.T) {
	if got := FilterByPrice(nil, 10, 50); len(got) != 0 {
		t.Errorf("FilterByPrice(nil) = %+v", got)
	}
}

func TestApplyFilters_UsesConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Filters = pricerange.Range{Min: 20, Max: 30}
	f := NewFilter(cfg)

	got := f.ApplyFilters(booksWithPrices("$19.99", "€20", "£30.00", "£30.01"))
	if len(got) != 2 || got[0].Title != "Book 2" || got[1].Title != "Book 3" {
		t.Errorf("ApplyFilters() = %+v", got)
	}
}

func TestAveragePrice(t *testing.T) {
	tests := []struct {
		name     string
		books    []models.Book
		expected float64
	}{
		{"empty", nil, 0},
		{"ten twenty thirty", booksWithPrices("£10.00", "£20.00", "£30.00"), 20.0},
		{"rounded", booksWithPrices("£10.00", "£10.00", "£10.01"), 10.0},
		{"rounds up", booksWithPrices("£10.00", "£11.00", "£11.00"), 10.67},
		{"unparsable counts as zero", booksWithPrices("£40.00", "bad"), 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AveragePrice(tt.books); got != tt.expected {
				t.Errorf("AveragePrice() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	raw := booksWithPrices("£5.00", "£10.00", "£20.00")
	filtered := FilterByPrice(raw, 10, 50)

	s := Summarize(raw, filtered, pricerange.Default())
	if s.TotalScraped != 3 || s.TotalFiltered != 2 || s.AveragePrice != 15 {
		t.Errorf("Summarize() = %+v", s)
	}
}
