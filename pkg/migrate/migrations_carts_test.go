package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCartsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_carts.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no carts migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS carts",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_carts_one_open_per_user",
		"WHERE NOT is_completed",
		"CREATE TABLE IF NOT EXISTS cart_items",
		"CHECK (quantity > 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_items_cart_product",
		"FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS cart_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	entries, err := os.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected migration files")
	}
}
