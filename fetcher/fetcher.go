package fetcher

import (
	"context"
	"fmt"
	"time"
)

// Fetcher retrieves the HTML of a single page
type Fetcher interface {
	// Fetch performs one GET request and returns the response body.
	// Transport failures, timeouts and non-2xx responses are errors.
	Fetch(ctx context.Context, url string) (string, error)
}

// Options shared by every fetcher implementation
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// New creates the fetcher registered under kind ("colly" or "rod").
// The returned close function releases any resources held by the fetcher.
func New(kind string, opts Options) (Fetcher, func() error, error) {
	switch kind {
	case "", "colly":
		return NewCollyFetcher(opts), func() error { return nil }, nil
	case "rod":
		rf, err := NewRodFetcher(opts)
		if err != nil {
			return nil, nil, err
		}
		return rf, rf.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetcher %q", kind)
	}
}
