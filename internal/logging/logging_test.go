package logging

import (
	"path/filepath"
	"testing"
)

func TestInfoWarnErrorAreRecorded(t *testing.T) {
	l, err := New(Config{Level: LevelInfo, MaxEntries: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	l.Info("router", "switched to %s", "ru")
	l.Warn("control", "reload failed: %v", "bad yaml")
	l.Error("macro", "injector wrote %d bytes", 24)

	entries := l.Recent(10)
	if len(entries) != 3 {
		t.Fatalf("Recent(10) returned %d entries, want 3", len(entries))
	}
	if entries[0].Level != LevelInfo || entries[0].Source != "router" || entries[0].Message != "switched to ru" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Level != LevelWarn || entries[1].Message != "reload failed: bad yaml" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Level != LevelError || entries[2].Message != "injector wrote 24 bytes" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestRecentTruncatesToRequestedCount(t *testing.T) {
	l, err := New(Config{Level: LevelDebug, MaxEntries: 100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Debug("test", "line %d", i)
	}

	last2 := l.Recent(2)
	if len(last2) != 2 {
		t.Fatalf("Recent(2) returned %d entries, want 2", len(last2))
	}
	if last2[0].Message != "line 3" || last2[1].Message != "line 4" {
		t.Errorf("Recent(2) = %+v, want the last two recorded lines", last2)
	}

	all := l.Recent(0)
	if len(all) != 5 {
		t.Errorf("Recent(0) = %d entries, want all 5", len(all))
	}
}

func TestRingBufferDropsOldestBeyondMaxEntries(t *testing.T) {
	l, err := New(Config{Level: LevelDebug, MaxEntries: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Info("test", "line %d", i)
	}

	entries := l.Recent(0)
	if len(entries) != 3 {
		t.Fatalf("ring buffer holds %d entries, want the configured max of 3", len(entries))
	}
	if entries[0].Message != "line 2" || entries[2].Message != "line 4" {
		t.Errorf("entries = %+v, want the three most recent lines 2-4", entries)
	}
}

func TestNewWritesToLogFileWhenConfigured(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daemon.log")

	l, err := New(Config{Level: LevelInfo, MaxEntries: 10, LogPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("test", "hello file core")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDefaultMaxEntriesWhenUnset(t *testing.T) {
	l, err := New(Config{Level: LevelInfo})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()
	if l.maxEntries != 1000 {
		t.Errorf("maxEntries = %d, want the default 1000", l.maxEntries)
	}
}
