package parser

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"books-scraper/models"
)

// Markup markers of a catalogue listing page
const (
	itemTag           = "article"
	itemClass         = "product_pod"
	headingTag        = "h3"
	linkTag           = "a"
	priceTag          = "p"
	priceClass        = "price_color"
	availabilityTag   = "p"
	availabilityClass = "instock availability"
)

// Values used when an optional element is missing
const (
	DefaultPrice        = "£0.00"
	DefaultAvailability = "Unknown"
)

var (
	errNoHeading = errors.New("missing heading element")
	errNoLink    = errors.New("missing link inside heading")
)

// Parser extracts book data from catalogue page HTML
type Parser struct {
	load   Loader
	logger *log.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLoader selects the document backend
func WithLoader(load Loader) Option {
	return func(p *Parser) {
		p.load = load
	}
}

// WithLogger sets where per-item diagnostics go
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new Parser instance backed by goquery unless configured otherwise
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		load:   LoadGoquery,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePage extracts every book on a page, in document order.
// pageURL is the address the markup was fetched from and is used to make
// book links absolute. Malformed items are logged and skipped.
func (p *Parser) ParsePage(htmlContent, pageURL string) ([]models.Book, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	doc, err := p.load(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var books []models.Book
	for i, item := range doc.FindAll(itemTag, itemClass) {
		book, err := extractBook(item, base)
		if err != nil {
			p.logger.Printf("Error extracting book data (item %d on %s): %v\n", i+1, pageURL, err)
			continue
		}
		books = append(books, *book)
	}

	return books, nil
}

// extractBook reads one item container. It fails only when the heading link
// that identifies the book cannot be found.
func extractBook(item Node, base *url.URL) (*models.Book, error) {
	heading, ok := item.Find(headingTag, "")
	if !ok {
		return nil, errNoHeading
	}
	link, ok := heading.Find(linkTag, "")
	if !ok {
		return nil, errNoLink
	}

	title, _ := link.Attr("title")
	href, _ := link.Attr("href")
	bookURL, err := ResolveURL(base, href)
	if err != nil {
		return nil, err
	}

	price := DefaultPrice
	if el, ok := item.Find(priceTag, priceClass); ok {
		price = el.Text()
	}

	availability := DefaultAvailability
	if el, ok := item.Find(availabilityTag, availabilityClass); ok {
		availability = el.Text()
	}

	return &models.Book{
		Title:        title,
		Price:        price,
		Availability: availability,
		URL:          bookURL,
	}, nil
}

// ResolveURL joins a possibly relative reference onto base.
// The catalogue mixes links relative to the page ("foo_1/index.html") with
// links relative to the site root ("catalogue/foo_1/index.html"). A relative
// path that starts with the page's own directory name is taken as the latter.
func ResolveURL(base *url.URL, ref string) (string, error) {
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", ref, err)
	}

	if refURL.Scheme == "" && refURL.Host == "" && !strings.HasPrefix(refURL.Path, "/") {
		dir := path.Dir(base.Path)
		if seg := path.Base(dir); seg != "/" && seg != "." && strings.HasPrefix(refURL.Path, seg+"/") {
			parent := *base
			parent.Path = strings.TrimSuffix(path.Dir(dir), "/") + "/"
			parent.RawPath = ""
			return parent.ResolveReference(refURL).String(), nil
		}
	}

	return base.ResolveReference(refURL).String(), nil
}
