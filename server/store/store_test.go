package store

import (
	"context"
	"errors"
	"os"
	"testing"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and
// skips the test when none is configured.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDeleteHandMissingRow(t *testing.T) {
	db := openTestDB(t)
	err := db.DeleteHand(context.Background(), "00000000-0000-0000-0000-000000000000", "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRangeMissingRow(t *testing.T) {
	db := openTestDB(t)
	err := db.DeleteRange(context.Background(), "nobody", "no_such_scenario")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveAndDeleteRange(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	const player, key = "store_test_player", "btn_open"

	if err := db.SaveRange(ctx, player, key, "AA,KK,AKs"); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved, err := db.SavedRanges(ctx, player)
	if err != nil {
		t.Fatalf("saved ranges: %v", err)
	}
	if saved[key] != "AA,KK,AKs" {
		t.Fatalf("saved[%q] = %q, want %q", key, saved[key], "AA,KK,AKs")
	}
	if err := db.DeleteRange(ctx, player, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.DeleteRange(ctx, player, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
