package pricerange

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Default bounds used when a range is not configured
const (
	DefaultMin = 10.0
	DefaultMax = 50.0
)

// Range is an inclusive price interval
type Range struct {
	Min float64 `yaml:"min_price"`
	Max float64 `yaml:"max_price"`
}

// Default returns the [10, 50] range
func Default() Range {
	return Range{Min: DefaultMin, Max: DefaultMax}
}

// Contains reports whether price lies within the range, bounds included
func (r Range) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

// Validate checks that the bounds are usable
func (r Range) Validate() error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("price bounds must be non-negative, got %.2f-%.2f", r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("min price %.2f is greater than max price %.2f", r.Min, r.Max)
	}
	return nil
}

// Label returns a human readable form like "£10.00-£50.00"
func (r Range) Label() string {
	return fmt.Sprintf("£%.2f-£%.2f", r.Min, r.Max)
}

// NormalizePrice converts raw price text such as "£51.77" into a number.
// Currency symbols (£, $, €) and whitespace are stripped before parsing.
// Anything that does not parse to a non-negative finite number yields 0.
func NormalizePrice(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '£', r == '$', r == '€':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, text)

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}
