package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "scanner.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleOpp(kind OppKind, edge float64) Opportunity {
	return Opportunity{
		ID:      uuid.New().String(),
		Kind:    kind,
		League:  "nba",
		Outcome: "game-total over 221.5 Miami Heat @ Boston Celtics",
		Book:    "draftkings",
		Price:   -108,
		Edge:    edge,
	}
}

func TestAddAndGet(t *testing.T) {
	db := openTestDB(t)

	opp := sampleOpp(KindValue, 0.042)
	if err := db.Add(opp); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := db.Get(opp.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a stored row")
	}
	if got.Kind != KindValue || got.Edge != 0.042 || got.Book != "draftkings" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetMissingIsNil(t *testing.T) {
	db := openTestDB(t)

	got, err := db.Get(uuid.New().String())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("missing row should be nil, got %+v", got)
	}
}

func TestRecentFiltersByKindAndCutoff(t *testing.T) {
	db := openTestDB(t)

	old := sampleOpp(KindValue, 0.03)
	old.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	if err := db.Add(old); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := db.Add(sampleOpp(KindValue, 0.05)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := db.Add(sampleOpp(KindArb, 0.01)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	recent, err := db.Recent(KindValue, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d rows, want only the fresh value play", len(recent))
	}
	if recent[0].Edge != 0.05 {
		t.Errorf("Edge = %v, want 0.05", recent[0].Edge)
	}
}

func TestByOutcome(t *testing.T) {
	db := openTestDB(t)

	if err := db.Add(sampleOpp(KindValue, 0.05)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	other := sampleOpp(KindValue, 0.02)
	other.Book = "fanduel"
	if err := db.Add(other); err != nil {
		t.Fatalf("Add: %v", err)
	}

	rows, err := db.ByOutcome("game-total over 221.5 Miami Heat @ Boston Celtics", "draftkings")
	if err != nil {
		t.Fatalf("ByOutcome: %v", err)
	}
	if len(rows) != 1 || rows[0].Book != "draftkings" {
		t.Errorf("got %d rows, want 1 draftkings row", len(rows))
	}
}

func TestPrune(t *testing.T) {
	db := openTestDB(t)

	old := sampleOpp(KindMisvalue, 0.08)
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	if err := db.Add(old); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := db.Add(sampleOpp(KindMisvalue, 0.09)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	gone, err := db.Prune(time.Now().UTC().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if gone != 1 {
		t.Errorf("pruned %d rows, want 1", gone)
	}

	left, err := db.Recent(KindMisvalue, time.Time{})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(left) != 1 {
		t.Errorf("%d rows left, want 1", len(left))
	}
}
