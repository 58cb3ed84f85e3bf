// Package engine owns the idle synchronization loop: sample the display
// idle counter, compare against the threshold, and push the session idle
// hint exactly when the observed state changes.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xidlesync/xidlesync/internal/config"
	"github.com/xidlesync/xidlesync/internal/database"
	"github.com/xidlesync/xidlesync/internal/metrics"
	"github.com/xidlesync/xidlesync/internal/models"
	"github.com/xidlesync/xidlesync/pkg/idle"
)

// Engine drives the poll loop. It is the only writer of the session idle
// hint and the only owner of the published-state memory used to dedupe
// writes.
type Engine struct {
	config *config.Config
	source idle.Source
	sink   idle.HintSink
	repo   *database.Repository // nil when the journal is disabled

	runID    string
	stopChan chan struct{}

	mu         sync.Mutex
	running    bool
	state      idle.State
	lastSample time.Duration
	polls      uint64
	writes     uint64
	errCount   uint64
	startedAt  time.Time
}

// Status is a point-in-time snapshot of the engine, served by the status
// subcommand and the web API.
type Status struct {
	Running          bool      `json:"running"`
	State            string    `json:"state"`
	IdleMs           int64     `json:"idle_ms"`
	ThresholdSeconds int64     `json:"threshold_seconds"`
	IntervalSeconds  int64     `json:"interval_seconds"`
	Polls            uint64    `json:"polls"`
	Writes           uint64    `json:"writes"`
	Errors           uint64    `json:"errors"`
	RunID            string    `json:"run_id"`
	StartedAt        time.Time `json:"started_at,omitzero"`
}

// New creates an engine. repo may be nil to disable the journal. The
// initial state is unknown so the first poll always publishes.
func New(cfg *config.Config, source idle.Source, sink idle.HintSink, repo *database.Repository) *Engine {
	return &Engine{
		config:   cfg,
		source:   source,
		sink:     sink,
		repo:     repo,
		runID:    uuid.NewString(),
		stopChan: make(chan struct{}),
		state:    idle.StateUnknown,
	}
}

// Run executes the continuous poll loop until the context is cancelled or
// Stop is called, then performs the exit-time hint reset.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("engine is already running")
	}
	e.running = true
	e.startedAt = time.Now()
	e.mu.Unlock()

	log.Printf("Starting idle sync: threshold=%v interval=%v run=%s",
		e.config.Sync.IdleThreshold, e.config.Sync.PollInterval, e.runID)

	ticker := time.NewTicker(e.config.Sync.PollInterval)
	defer ticker.Stop()

	// First poll runs immediately. Transient failures are logged and the
	// cycle skipped; the next tick retries.
	if err := e.poll(); err != nil {
		e.recordError(err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Sync engine stopped by signal")
			e.resetHint()
			e.setRunning(false)
			return nil

		case <-e.stopChan:
			log.Println("Sync engine stopped")
			e.resetHint()
			e.setRunning(false)
			return nil

		case <-ticker.C:
			if err := e.poll(); err != nil {
				e.recordError(err)
			}
		}
	}
}

// CheckOnce performs exactly one sample-and-possibly-write cycle. No loop,
// no sleep, no exit-time reset; a failure is the run's terminal error.
func (e *Engine) CheckOnce() error {
	return e.poll()
}

// Stop requests the loop to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		close(e.stopChan)
		e.running = false
	}
}

// IsRunning reports whether the loop is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) setRunning(v bool) {
	e.mu.Lock()
	e.running = v
	e.mu.Unlock()
}

// State returns the last published state.
func (e *Engine) State() idle.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Status returns a snapshot for the status surfaces.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Status{
		Running:          e.running,
		State:            e.state.String(),
		IdleMs:           e.lastSample.Milliseconds(),
		ThresholdSeconds: e.config.GetIdleThresholdSeconds(),
		IntervalSeconds:  int64(e.config.Sync.PollInterval.Seconds()),
		Polls:            e.polls,
		Writes:           e.writes,
		Errors:           e.errCount,
		RunID:            e.runID,
		StartedAt:        e.startedAt,
	}
}

// poll is the transition function: read the idle counter, derive the
// observed state, and write the hint only if it differs from the last
// published state. The threshold boundary itself counts as idle.
func (e *Engine) poll() error {
	metrics.Polls.Inc()

	sample, err := e.source.IdleDuration()
	if err != nil {
		return fmt.Errorf("failed to sample idle time: %w", err)
	}

	observed := idle.StateActive
	if sample >= e.config.Sync.IdleThreshold {
		observed = idle.StateIdle
	}

	e.mu.Lock()
	e.lastSample = sample
	e.polls++
	current := e.state
	e.mu.Unlock()

	metrics.IdleSeconds.Set(sample.Seconds())

	if observed == current {
		return nil
	}

	isIdle := observed == idle.StateIdle
	if err := e.sink.SetIdleHint(isIdle); err != nil {
		// State stays as-is so the write is retried on the next cycle.
		return fmt.Errorf("failed to set idle hint: %w", err)
	}

	e.mu.Lock()
	e.state = observed
	e.writes++
	e.mu.Unlock()

	metrics.HintWrites.WithLabelValues(observed.String()).Inc()
	if isIdle {
		metrics.SessionIdle.Set(1)
	} else {
		metrics.SessionIdle.Set(0)
	}

	log.Printf("User is %s (idle for %v)", observed, sample.Truncate(time.Millisecond))
	e.journalTransition(observed, sample)

	return nil
}

// resetHint is the shutdown cleanup write. Unconditional best effort: it
// bypasses the transition dedup, and failure never blocks termination.
func (e *Engine) resetHint() {
	if !e.config.Sync.ResetOnExit {
		log.Println("Exiting without resetting idle hint")
		return
	}

	if err := e.sink.SetIdleHint(false); err != nil {
		log.Printf("Failed to reset idle hint on exit: %v", err)
		return
	}

	metrics.SessionIdle.Set(0)
	log.Println("Idle hint reset to false")
}

func (e *Engine) recordError(err error) {
	log.Printf("Poll cycle skipped: %v", err)
	metrics.PollErrors.Inc()

	e.mu.Lock()
	e.errCount++
	e.mu.Unlock()

	if e.repo == nil {
		return
	}

	errorLog := &models.ErrorLog{
		RunID:     e.runID,
		Timestamp: time.Now(),
		ErrorMsg:  err.Error(),
	}
	if dbErr := e.repo.CreateErrorLog(errorLog); dbErr != nil {
		log.Printf("Failed to journal error: %v (original error: %v)", dbErr, err)
	}
}

func (e *Engine) journalTransition(state idle.State, sample time.Duration) {
	if e.repo == nil {
		return
	}

	t := &models.Transition{
		RunID:     e.runID,
		Timestamp: time.Now(),
		State:     state.String(),
		IdleMs:    sample.Milliseconds(),
	}
	if err := e.repo.CreateTransition(t); err != nil {
		log.Printf("Failed to journal transition: %v", err)
	}
}
