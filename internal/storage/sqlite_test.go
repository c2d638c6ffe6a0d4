package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	base := time.UnixMilli(1_700_000_000_000)
	for i, effect := range []string{"firework", "smoke", "firework", "firework"} {
		_, err := store.SaveRun(Run{
			Effect:        effect,
			Seed:          uint64(i + 1),
			Frames:        60,
			Step:          16,
			PeakParticles: 10 * (i + 1),
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("firework", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Seed != 4 || runs[1].Seed != 3 {
		t.Errorf("Expected seeds [4 3], got [%d %d]", runs[0].Seed, runs[1].Seed)
	}
	if runs[0].PeakParticles != 40 {
		t.Errorf("Expected peak 40, got %d", runs[0].PeakParticles)
	}
	if !runs[0].CreatedAt.Equal(base.Add(3 * time.Second)) {
		t.Errorf("CreatedAt = %v", runs[0].CreatedAt)
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs in total, got %d", len(all))
	}

	n, err := store.CountRuns("smoke")
	if err != nil || n != 1 {
		t.Errorf("CountRuns(smoke) = %d, %v", n, err)
	}
}

func TestStoreRunRoundTrip(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	fixed := time.UnixMilli(1_700_000_123_456)
	store.now = func() time.Time { return fixed }

	saved, err := store.SaveRun(Run{
		Effect:         "explosion",
		Seed:           ^uint64(0), // 超出 int64 范围
		Frames:         120,
		Step:           16.5,
		PeakParticles:  300,
		FinalParticles: 12,
		Spawned:        900,
		Dropped:        3,
		Duration:       1500 * time.Microsecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", saved.ID, err)
	}
	if !saved.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", saved.CreatedAt, fixed)
	}

	runs, err := store.RecentRuns("explosion", 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("RecentRuns() = %v, %v", runs, err)
	}
	got := runs[0]
	got.CreatedAt = saved.CreatedAt // 时区表示可能不同
	if got != saved {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, saved)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, effect := range []string{"snow", "snow", "embers"} {
		if _, err := store.SaveRun(Run{Effect: effect}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns("snow"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns("snow", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no snow runs after clear, got %d", len(runs))
	}
	runs, _ = store.RecentRuns("embers", 10)
	if len(runs) != 1 {
		t.Errorf("Expected embers run to survive, got %d", len(runs))
	}
}
