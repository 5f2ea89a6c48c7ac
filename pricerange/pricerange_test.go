package pricerange

import (
	"strconv"
	"testing"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"pound", "£51.77", 51.77},
		{"dollar", "$10.00", 10.0},
		{"euro", "€25.5", 25.5},
		{"zero pound", "£0.00", 0},
		{"zero dollar", "$0.00", 0},
		{"zero euro", "€0.00", 0},
		{"clean numeric", "42.10", 42.10},
		{"surrounding whitespace", "  £ 13.99\n", 13.99},
		{"non-breaking space", "£ 12.50", 12.50},
		{"multiple symbols", "££$20", 20},
		{"not a price", "not-a-price", 0},
		{"empty", "", 0},
		{"only symbol", "£", 0},
		{"other currency", "¥100", 0},
		{"thousands separator", "£1,000.00", 0},
		{"negative", "-5.00", 0},
		{"nan", "NaN", 0},
		{"infinity", "£Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePrice(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizePrice(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePrice_Idempotent(t *testing.T) {
	for _, s := range []string{"0", "10.5", "49.99", "1e2"} {
		first := NormalizePrice(s)
		second := NormalizePrice(strconv.FormatFloat(first, 'f', -1, 64))
		if first != second {
			t.Errorf("NormalizePrice not idempotent for %q: %v then %v", s, first, second)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Default()
	tests := []struct {
		price float64
		want  bool
	}{
		{5.0, false},
		{9.99, false},
		{10.0, true},
		{25.0, true},
		{50.0, true},
		{50.01, false},
		{75.0, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.price); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"default", Default(), false},
		{"single point", Range{Min: 20, Max: 20}, false},
		{"inverted", Range{Min: 50, Max: 10}, true},
		{"negative", Range{Min: -1, Max: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRangeLabel(t *testing.T) {
	if got := Default().Label(); got != "£10.00-£50.00" {
		t.Errorf("Label() = %q", got)
	}
}
