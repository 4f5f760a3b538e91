package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_line_items",
		"CREATE TABLE IF NOT EXISTS order_status_events",
		"parent_order_id uuid REFERENCES orders(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_order_number",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at_id",
		"DROP TABLE IF EXISTS orders",
	})
}

func TestCommissionMigrationEnforcesPeriodUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_commission_ledger.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS monthly_commission_records",
		"CREATE TABLE IF NOT EXISTS commission_transactions",
		"CREATE TABLE IF NOT EXISTS commission_payments",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_commission_vendor_period",
		"CHECK (pending_commission_cents >= 0)",
		"CHECK (month >= 1 AND month <= 12)",
	})
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_inventory_items.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS inventory_items",
		"CHECK (available_qty >= 0)",
		"CHECK (reserved_qty >= 0)",
		"DROP TABLE IF EXISTS inventory_items",
	})
}

func TestOutboxMigrationBacksIdempotentEmit(t *testing.T) {
	content := readMigration(t, "*_create_outbox.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"CREATE UNIQUE INDEX IF NOT EXISTS ux_outbox_events_event_aggregate",
		"CREATE TABLE IF NOT EXISTS outbox_dlq",
	})
}
