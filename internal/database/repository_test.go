package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xidlesync/xidlesync/internal/models"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := Connect(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	return NewRepository(db)
}

func TestCreateAndGetTransition(t *testing.T) {
	repo := testRepository(t)

	tr := &models.Transition{
		RunID:     "run-1",
		Timestamp: time.Now(),
		State:     "idle",
		IdleMs:    301000,
	}
	if err := repo.CreateTransition(tr); err != nil {
		t.Fatalf("CreateTransition() error: %v", err)
	}
	if tr.ID == 0 {
		t.Fatal("CreateTransition() did not assign an ID")
	}

	got, err := repo.GetTransitionByID(tr.ID)
	if err != nil {
		t.Fatalf("GetTransitionByID() error: %v", err)
	}
	if got.State != "idle" || got.IdleMs != 301000 || got.RunID != "run-1" {
		t.Errorf("round-tripped transition = %+v", got)
	}
}

func TestRecentTransitionsOrder(t *testing.T) {
	repo := testRepository(t)
	base := time.Now().Add(-time.Hour)

	states := []string{"active", "idle", "active"}
	for i, state := range states {
		tr := &models.Transition{
			RunID:     "run-1",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			State:     state,
		}
		if err := repo.CreateTransition(tr); err != nil {
			t.Fatalf("CreateTransition() #%d error: %v", i, err)
		}
	}

	recent, err := repo.RecentTransitions(2)
	if err != nil {
		t.Fatalf("RecentTransitions() error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentTransitions(2) returned %d rows", len(recent))
	}
	if recent[0].State != "active" || recent[1].State != "idle" {
		t.Errorf("RecentTransitions() order wrong: %s, %s", recent[0].State, recent[1].State)
	}
}

func TestTransitionsSince(t *testing.T) {
	repo := testRepository(t)
	base := time.Now().Add(-2 * time.Hour)

	for i := 0; i < 4; i++ {
		tr := &models.Transition{
			RunID:     "run-1",
			Timestamp: base.Add(time.Duration(i) * 30 * time.Minute),
			State:     "active",
		}
		if err := repo.CreateTransition(tr); err != nil {
			t.Fatal(err)
		}
	}

	since := base.Add(45 * time.Minute)
	got, err := repo.TransitionsSince(since)
	if err != nil {
		t.Fatalf("TransitionsSince() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("TransitionsSince() returned %d rows, want 2", len(got))
	}
}

func TestErrorLogs(t *testing.T) {
	repo := testRepository(t)

	e := &models.ErrorLog{
		RunID:     "run-1",
		Timestamp: time.Now(),
		ErrorMsg:  "failed to sample idle time: connection dropped",
	}
	if err := repo.CreateErrorLog(e); err != nil {
		t.Fatalf("CreateErrorLog() error: %v", err)
	}

	logs, err := repo.RecentErrors(10)
	if err != nil {
		t.Fatalf("RecentErrors() error: %v", err)
	}
	if len(logs) != 1 || logs[0].ErrorMsg != e.ErrorMsg {
		t.Errorf("RecentErrors() = %+v", logs)
	}
}

func TestPrune(t *testing.T) {
	repo := testRepository(t)
	now := time.Now()

	old := &models.Transition{RunID: "run-0", Timestamp: now.Add(-48 * time.Hour), State: "idle"}
	fresh := &models.Transition{RunID: "run-1", Timestamp: now, State: "active"}
	for _, tr := range []*models.Transition{old, fresh} {
		if err := repo.CreateTransition(tr); err != nil {
			t.Fatal(err)
		}
	}

	if err := repo.Prune(now.Add(-24 * time.Hour)); err != nil {
		t.Fatalf("Prune() error: %v", err)
	}

	remaining, err := repo.RecentTransitions(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].RunID != "run-1" {
		t.Errorf("after Prune() remaining = %+v, want only the fresh row", remaining)
	}
}

func TestClear(t *testing.T) {
	repo := testRepository(t)

	if err := repo.CreateTransition(&models.Transition{
		RunID: "run-1", Timestamp: time.Now(), State: "idle",
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateErrorLog(&models.ErrorLog{
		RunID: "run-1", Timestamp: time.Now(), ErrorMsg: "boom",
	}); err != nil {
		t.Fatal(err)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	transitions, err := repo.RecentTransitions(10)
	if err != nil {
		t.Fatal(err)
	}
	logs, err := repo.RecentErrors(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(transitions) != 0 || len(logs) != 0 {
		t.Errorf("Clear() left %d transitions, %d errors", len(transitions), len(logs))
	}
}
