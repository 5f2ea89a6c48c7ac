package models

// Book represents a single catalogue entry scraped from a listing page
type Book struct {
	Title        string `csv:"title"`
	Price        string `csv:"price"` // Raw price text as shown on the page, e.g. "£51.77"
	Availability string `csv:"availability"`
	URL          string `csv:"url"` // Always absolute
}

// CSVHeader is the column order used by every tabular output
var CSVHeader = []string{"title", "price", "availability", "url"}

// Row returns the book fields in CSVHeader order
func (b Book) Row() []string {
	return []string{b.Title, b.Price, b.Availability, b.URL}
}
