package db

import "testing"

func TestConnStringFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "")
	t.Setenv("DB_SSLMODE", "")

	want := "host=db.internal port=5432 user=books_scraper password=secret dbname=books_scraper sslmode=disable"
	if got := connStringFromEnv(); got != want {
		t.Errorf("connStringFromEnv() = %q, want %q", got, want)
	}

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/books")
	if got := connStringFromEnv(); got != "postgres://u:p@localhost/books" {
		t.Errorf("connStringFromEnv() = %q, want DATABASE_URL", got)
	}
}

func TestConfigured(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")

	if Configured("") {
		t.Error("Configured() = true with nothing set")
	}
	if !Configured("postgres://localhost/books") {
		t.Error("Configured() = false with explicit connection string")
	}

	t.Setenv("DB_HOST", "localhost")
	if !Configured("") {
		t.Error("Configured() = false with DB_HOST set")
	}
}
