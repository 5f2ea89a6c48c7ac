package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"

	"books-scraper/models"

	"github.com/gocarina/gocsv"
)

// ErrNoBooks is returned when there is nothing to write; no file is created
var ErrNoBooks = errors.New("no books to save")

// WriteCSV saves books to filename with a title,price,availability,url header.
// Records are UTF-8 and CRLF terminated.
func WriteCSV(filename string, books []models.Book) error {
	if len(books) == 0 {
		return fmt.Errorf("%s: %w", filename, ErrNoBooks)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := gocsv.MarshalCSV(&books, gocsv.NewSafeCSVWriter(w)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filename, err)
	}
	return nil
}

// SaveBooks writes books to filename and logs the outcome instead of failing
func SaveBooks(filename string, books []models.Book) bool {
	if err := WriteCSV(filename, books); err != nil {
		if errors.Is(err, ErrNoBooks) {
			log.Printf("No data to save to %s\n", filename)
		} else {
			log.Printf("Error writing to %s: %v\n", filename, err)
		}
		return false
	}
	log.Printf("Saved %d books to %s\n", len(books), filename)
	return true
}
