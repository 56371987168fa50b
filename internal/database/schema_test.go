package database

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const migrationsDir = "../../migrations"

func readMigrations(t *testing.T) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("failed to read migrations dir: %v", err)
	}

	migrations := make(map[string]string)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			t.Fatalf("failed to read %s: %v", entry.Name(), err)
		}
		migrations[entry.Name()] = string(content)
	}
	return migrations
}

func TestMigrations_HaveGooseMarkers(t *testing.T) {
	migrations := readMigrations(t)
	if len(migrations) == 0 {
		t.Fatal("no migration files found")
	}

	for name, content := range migrations {
		if !strings.Contains(content, "-- +goose Up") {
			t.Errorf("%s: missing goose Up marker", name)
		}
		if !strings.Contains(content, "-- +goose Down") {
			t.Errorf("%s: missing goose Down marker", name)
		}
	}
}

func TestMigrations_SequentialVersions(t *testing.T) {
	migrations := readMigrations(t)

	names := make([]string, 0, len(migrations))
	for name := range migrations {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]bool)
	for _, name := range names {
		version := strings.SplitN(name, "_", 2)[0]
		if seen[version] {
			t.Errorf("duplicate migration version %s", version)
		}
		seen[version] = true
	}
}

// The category delete guard leans on this constraint; losing it from the
// schema would silently weaken the integrity check to a racy count.
func TestMigrations_ProductsKeepRestrictForeignKey(t *testing.T) {
	migrations := readMigrations(t)

	var productsMigration string
	for name, content := range migrations {
		if strings.Contains(name, "products") {
			productsMigration = content
			break
		}
	}
	if productsMigration == "" {
		t.Fatal("products migration not found")
	}

	if !strings.Contains(productsMigration, "fk_products_category") {
		t.Error("products migration lost the named category foreign key")
	}
	if !strings.Contains(productsMigration, "ON DELETE RESTRICT") {
		t.Error("products migration lost the ON DELETE RESTRICT clause")
	}
	if !strings.Contains(productsMigration, "CHECK (price >= 0)") {
		t.Error("products migration lost the non-negative price check")
	}
}
