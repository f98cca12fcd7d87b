package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "motion:\n  max_speed: 10\n")
	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("motion:\n  max_speed: 40\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case s := <-w.Updates:
		if s.Motion.MaxSpeed != 40 {
			t.Errorf("reloaded max speed = %v, want 40", s.Motion.MaxSpeed)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "motion:\n  max_speed: 10\n")
	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("motion:\n  max_speed: -1\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case s := <-w.Updates:
		t.Fatalf("invalid file produced settings %+v", s.Motion)
	case err := <-w.Errors:
		if err == nil {
			t.Fatal("nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(writeFile(t, t.TempDir(), ""))
	if err != nil {
		t.Fatalf("NewWatcher() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if _, ok := <-w.Updates; ok {
		t.Error("Updates still open after Close")
	}
}
