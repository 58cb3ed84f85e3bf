package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/database"
	"github.com/xidlesync/xidlesync/internal/engine"
	"github.com/xidlesync/xidlesync/internal/models"
)

type staticSource struct{ d time.Duration }

func (s staticSource) IdleDuration() (time.Duration, error) { return s.d, nil }
func (staticSource) Close() error                           { return nil }

type nullSink struct{}

func (nullSink) SetIdleHint(bool) error        { return nil }
func (nullSink) IdleHint() (bool, error)       { return false, nil }
func (nullSink) IdleSince() (time.Time, error) { return time.Time{}, nil }
func (nullSink) Close() error                  { return nil }

func testHandler(t *testing.T, repo *database.Repository) *Handler {
	t.Helper()

	cfg := config.Default()
	eng := engine.New(cfg, staticSource{d: 12 * time.Second}, nullSink{}, repo)
	if err := eng.CheckOnce(); err != nil {
		t.Fatalf("CheckOnce() error: %v", err)
	}

	return NewHandler(cfg, eng, repo)
}

func testRepo(t *testing.T) *database.Repository {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return database.NewRepository(db)
}

func TestHandleHealth(t *testing.T) {
	h := testHandler(t, nil)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", resp.StatusCode)
	}
}

func TestHandleStatus(t *testing.T) {
	h := testHandler(t, nil)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/status = %d, want 200", resp.StatusCode)
	}

	var status engine.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}

	if status.State != "active" {
		t.Errorf("status.State = %q, want %q", status.State, "active")
	}
	if status.IdleMs != 12000 {
		t.Errorf("status.IdleMs = %d, want 12000", status.IdleMs)
	}
	if status.Polls != 1 {
		t.Errorf("status.Polls = %d, want 1", status.Polls)
	}
}

func TestHandleTransitions(t *testing.T) {
	repo := testRepo(t)
	h := testHandler(t, repo)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/transitions?limit=10")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/transitions = %d, want 200", resp.StatusCode)
	}

	var transitions []*models.Transition
	if err := json.NewDecoder(resp.Body).Decode(&transitions); err != nil {
		t.Fatalf("decode transitions: %v", err)
	}

	// The bootstrap poll published one transition.
	if len(transitions) != 1 {
		t.Fatalf("got %d transitions, want 1", len(transitions))
	}
	if transitions[0].State != "active" {
		t.Errorf("transition state = %q, want %q", transitions[0].State, "active")
	}
}

func TestHandleTransitionsJournalDisabled(t *testing.T) {
	h := testHandler(t, nil)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/transitions")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /api/transitions without journal = %d, want 404", resp.StatusCode)
	}
}

func TestHandleMetrics(t *testing.T) {
	h := testHandler(t, nil)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics = %d, want 200", resp.StatusCode)
	}
}
