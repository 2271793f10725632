package migrate

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSQLMigrationSortsAfterNewest(t *testing.T) {
	dir := t.TempDir()
	future := filepath.Join(dir, "20990101000000_future.sql")
	if err := os.WriteFile(future, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("seed migration: %v", err)
	}

	path, err := createSQLMigration(dir, "add order notes", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if filepath.Base(path) != "20990101000001_add_order_notes.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	if _, err := createSQLMigration(t.TempDir(), "!!!", time.Now()); err == nil {
		t.Fatal("expected error for a name without usable characters")
	}
}

func TestValidateDirRequiresNoTransactionForConcurrentIndexes(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Up\nCREATE INDEX CONCURRENTLY orders_status_idx ON orders (status);\n-- +goose Down\nDROP INDEX orders_status_idx;\n"
	if err := os.WriteFile(filepath.Join(dir, "20260301120300_orders_status_idx.sql"), []byte(body), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}

	err := ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "NO TRANSACTION") {
		t.Fatalf("expected NO TRANSACTION error, got %v", err)
	}

	fixed := "-- +goose NO TRANSACTION\n" + body
	if err := os.WriteFile(filepath.Join(dir, "20260301120300_orders_status_idx.sql"), []byte(fixed), 0o644); err != nil {
		t.Fatalf("rewrite migration: %v", err)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("expected valid dir, got %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "orders.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestRunRejectsUnsupportedCommands(t *testing.T) {
	err := Run(context.Background(), new(sql.DB), "postgres", t.TempDir(), "reset")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported command error, got %v", err)
	}
}

func TestMigrateToVersionRequiresKnownVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "20260301120000_create_customers.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}

	if err := MigrateToVersion(context.Background(), new(sql.DB), "postgres", dir, "latest"); err == nil {
		t.Fatal("expected parse error for non-numeric version")
	}
	err := MigrateToVersion(context.Background(), new(sql.DB), "postgres", dir, "20260301120100")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected unknown version error, got %v", err)
	}
}
