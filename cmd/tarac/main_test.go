package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEntry(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.tara")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	return path
}

func TestRunCleanSourceExitsZero(t *testing.T) {
	entry := writeEntry(t, `func id(x: int): int x`)
	if code := run(entry, false, false, ""); code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
}

func TestRunTypeErrorExitsNonzero(t *testing.T) {
	entry := writeEntry(t, `func bad(x: int): int "oops"`)
	if code := run(entry, false, false, ""); code == 0 {
		t.Fatal("expected nonzero exit code on a type error")
	}
}

func TestRunWritesInspectionDatabase(t *testing.T) {
	entry := writeEntry(t, `func id(x: int): int x`)
	dbPath := filepath.Join(t.TempDir(), "session.db")
	if code := run(entry, false, false, dbPath); code != 0 {
		t.Fatalf("got exit code %d, want 0", code)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected inspection database at %s: %v", dbPath, err)
	}
}
