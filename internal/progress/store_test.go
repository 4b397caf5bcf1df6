package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMarkCompleteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Completed("foods", "abcd1234", Front) {
		t.Error("Expected empty store to report incomplete")
	}

	if err := s.MarkComplete("foods", "abcd1234", Front); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if !s.Completed("foods", "abcd1234", Front) {
		t.Error("Expected front completion")
	}
	if s.Completed("foods", "abcd1234", Back) {
		t.Error("Expected back to stay incomplete")
	}

	// Survives a reload.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if !s2.Completed("foods", "abcd1234", Front) {
		t.Error("Expected completion to persist across reload")
	}
}

func TestHashMismatchResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s, _ := Open(path)

	if err := s.MarkComplete("foods", "abcd1234", Front); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if err := s.MarkComplete("foods", "abcd1234", Back); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	// The deck content changed.
	if s.Completed("foods", "ffff0000", Front) {
		t.Error("Expected changed deck to report incomplete")
	}
	if err := s.MarkComplete("foods", "ffff0000", Back); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if s.Completed("foods", "ffff0000", Front) {
		t.Error("Expected hash change to clear the old front flag")
	}
	if !s.Completed("foods", "ffff0000", Back) {
		t.Error("Expected new back completion")
	}
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s, _ := Open(path)

	if err := s.Reset("missing"); err != nil {
		t.Fatalf("Reset of unknown deck failed: %v", err)
	}

	s.MarkComplete("animals", "12345678", Front)
	if err := s.Reset("animals"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.Completed("animals", "12345678", Front) {
		t.Error("Expected reset deck to report incomplete")
	}
}

func TestOpenDiscardsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed on corrupt file: %v", err)
	}
	if s.Completed("foods", "abcd1234", Front) {
		t.Error("Expected corrupt file to start empty")
	}
}
