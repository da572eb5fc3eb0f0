package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/guessing/assets"
	"github.com/robalobadob/guessing/internal/sqlitedb"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	tm := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(tm); got != "2026-03-01" {
		t.Fatalf("DateKey = %q, want 2026-03-01", got)
	}
}

func TestTarget(t *testing.T) {
	day := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	a := Target(day, "salt", 0, 10)
	if a < 0 || a >= 10 {
		t.Fatalf("Target = %d, want in [0, 10)", a)
	}
	if b := Target(day.Add(3*time.Hour), "salt", 0, 10); a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
	if got := Target(day, "salt", 5, 6); got != 5 {
		t.Fatalf("single-value span = %d, want 5", got)
	}
	if got := Target(day, "salt", 3, 3); got != 3 {
		t.Fatalf("empty span = %d, want low", got)
	}

	// Across many days with a wide span the target must vary.
	seen := make(map[int]bool)
	for i := 0; i < 30; i++ {
		seen[Target(day.AddDate(0, 0, i), "salt", 0, 1000)] = true
	}
	if len(seen) < 2 {
		t.Fatal("target never changes across days")
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlitedb.Migrate(db, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	return NewStore(db)
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	date := "2026-10-14"

	played, err := s.AlreadyPlayed(ctx, "u1", date)
	if err != nil || played {
		t.Fatalf("AlreadyPlayed before insert = %v, %v", played, err)
	}

	results := []Result{
		{UserID: "u1", Date: date, Target: 4, Attempts: 3, ElapsedMs: 900},
		{UserID: "u2", Date: date, Target: 4, Attempts: 2, ElapsedMs: 5000},
		{UserID: "u3", Date: date, Target: 4, Attempts: 3, ElapsedMs: 100},
		{UserID: "u1", Date: date, Target: 4, Attempts: 1, ElapsedMs: 1}, // ignored duplicate
		{UserID: "u4", Date: "2026-10-13", Target: 1, Attempts: 1, ElapsedMs: 1},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("InsertResult(%+v): %v", r, err)
		}
	}

	played, err = s.AlreadyPlayed(ctx, "u1", date)
	if err != nil || !played {
		t.Fatalf("AlreadyPlayed after insert = %v, %v", played, err)
	}

	top, err := s.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	want := []string{"u2", "u3", "u1"}
	if len(top) != len(want) {
		t.Fatalf("leaderboard = %+v", top)
	}
	for i, id := range want {
		if top[i].UserID != id {
			t.Errorf("rank %d = %s, want %s", i, top[i].UserID, id)
		}
	}
	if top[2].Attempts != 3 {
		t.Errorf("duplicate insert overwrote u1: %+v", top[2])
	}
}
