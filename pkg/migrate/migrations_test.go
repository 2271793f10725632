package migrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-checkout/pkg/config"
	"github.com/angelmondragon/storefront-checkout/pkg/db"
	"github.com/angelmondragon/storefront-checkout/pkg/db/models"
	"github.com/angelmondragon/storefront-checkout/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE UNIQUE INDEX IF NOT EXISTS orders_order_key_idx ON orders (order_key)",
		"REFERENCES customers(id) ON DELETE SET NULL",
		"CHECK (total >= 0)",
		"DROP TABLE IF EXISTS orders",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestGatewaysMigrationSeedsBankTransfer(t *testing.T) {
	content := readMigration(t, "*_create_payment_gateways.sql")
	if !strings.Contains(content, "('bacs', 'Direct bank transfer'") {
		t.Fatal("expected bank transfer gateway seed")
	}
	if !strings.Contains(content, "ON CONFLICT (id) DO NOTHING") {
		t.Fatal("expected idempotent seed")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Order Notes!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_order_notes.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration invalid: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestAutoMigrateModelsOnSQLite(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{DSN: "file::memory:", MaxOpenConns: 1}, true, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	for i := 0; i < 2; i++ {
		if err := migrate.AutoMigrateModels(ctx, client); err != nil {
			t.Fatalf("auto-migrate #%d: %v", i, err)
		}
	}

	var count int64
	if err := client.DB().Model(&models.PaymentGateway{}).Count(&count).Error; err != nil {
		t.Fatalf("count gateways: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one seeded gateway, got %d", count)
	}
}
