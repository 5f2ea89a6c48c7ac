package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"books-scraper/config"
)

func catalogueServer(t *testing.T) *httptest.Server {
	t.Helper()
	prices := map[string][]string{
		"/catalogue/page-1.html": {"£5.00", "£10.00", "£25.00"},
		"/catalogue/page-3.html": {"£50.00", "£75.00"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, ok := prices[r.URL.Path]
		if !ok {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		var b strings.Builder
		b.WriteString("<html><body>")
		for i, p := range list {
			fmt.Fprintf(&b, `<article class="product_pod"><h3><a href="item_%d/index.html" title="%s %d">t</a></h3><p class="price_color">%s</p><p class="instock availability">In stock</p></article>`,
				i, filepath.Base(r.URL.Path), i, p)
		}
		b.WriteString("</body></html>")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(b.String()))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	srv := catalogueServer(t)
	dir := t.TempDir()

	cfg := config.GetDefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Pages = 3
	cfg.Delay = time.Millisecond
	cfg.Timeout = 5 * time.Second
	cfg.Output.RawFile = filepath.Join(dir, "raw.csv")
	cfg.Output.FilteredFile = filepath.Join(dir, "filtered.csv")

	if err := run(context.Background(), cfg, sinkOptions{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	raw, err := os.ReadFile(cfg.Output.RawFile)
	if err != nil {
		t.Fatalf("raw output missing: %v", err)
	}
	if lines := strings.Count(string(raw), "\r\n"); lines != 6 {
		t.Errorf("raw output has %d lines, want header + 5 books:\n%s", lines, raw)
	}

	filtered, err := os.ReadFile(cfg.Output.FilteredFile)
	if err != nil {
		t.Fatalf("filtered output missing: %v", err)
	}
	rows := strings.Split(strings.TrimSpace(string(filtered)), "\r\n")
	if len(rows) != 4 {
		t.Fatalf("filtered output has %d rows, want header + 3 books:\n%s", len(rows), filtered)
	}
	if rows[0] != "title,price,availability,url" {
		t.Errorf("header = %q", rows[0])
	}
	for i, price := range []string{"£10.00", "£25.00", "£50.00"} {
		if !strings.Contains(rows[i+1], ","+price+",") {
			t.Errorf("row %d = %q, want price %s", i+1, rows[i+1], price)
		}
	}
}

func TestRun_NothingInRangeWritesNoFilteredFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	srv := catalogueServer(t)
	dir := t.TempDir()

	cfg := config.GetDefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Pages = 1
	cfg.Filters.Min, cfg.Filters.Max = 100, 200
	cfg.Output.RawFile = filepath.Join(dir, "raw.csv")
	cfg.Output.FilteredFile = filepath.Join(dir, "filtered.csv")

	if err := run(context.Background(), cfg, sinkOptions{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(cfg.Output.RawFile); err != nil {
		t.Errorf("raw output missing: %v", err)
	}
	if _, err := os.Stat(cfg.Output.FilteredFile); !os.IsNotExist(err) {
		t.Errorf("filtered output should not exist, stat error = %v", err)
	}
}

func TestRun_UnknownParser(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Parser = "regex"
	if err := run(context.Background(), cfg, sinkOptions{}); err == nil {
		t.Error("expected error for unknown parser")
	}
}
