package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadRemovePID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "test.pid")
	d := New(pidFile)

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error: %v", err)
	}

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID() = %d, want %d", pid, os.Getpid())
	}

	if err := d.RemovePID(); err != nil {
		t.Fatalf("RemovePID() error: %v", err)
	}

	pid, err = d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() after remove error: %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() after remove = %d, want 0", pid)
	}
}

func TestReadPIDMissingFile(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing.pid"))

	pid, err := d.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error: %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() = %d, want 0 for missing file", pid)
	}
}

func TestReadPIDInvalidContent(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "bad.pid")
	if err := os.WriteFile(pidFile, []byte("not-a-pid"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(pidFile)
	if _, err := d.ReadPID(); err == nil {
		t.Error("ReadPID() = nil, want error for invalid content")
	}
}

func TestIsRunningOwnProcess(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "test.pid")
	d := New(pidFile)

	if err := d.WritePID(); err != nil {
		t.Fatalf("WritePID() error: %v", err)
	}
	defer d.RemovePID()

	running, pid, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if !running {
		t.Error("IsRunning() = false for own live process")
	}
	if pid != os.Getpid() {
		t.Errorf("IsRunning() pid = %d, want %d", pid, os.Getpid())
	}
}

func TestIsRunningStalePID(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "stale.pid")
	// PIDs this large cannot exist on Linux (default max is 4194304).
	if err := os.WriteFile(pidFile, []byte("99999999"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(pidFile)
	running, _, err := d.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if running {
		t.Error("IsRunning() = true for stale PID")
	}

	// The stale file should have been cleaned up.
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("stale PID file was not removed")
	}
}

func TestStopNotRunning(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "none.pid"))
	if err := d.Stop(); err == nil {
		t.Error("Stop() = nil, want error when daemon is not running")
	}
}
