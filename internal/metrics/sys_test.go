package metrics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1024:            "1.0 KiB",
		1536:            "1.5 KiB",
		20 * 1024:       "20 KiB",
		5 * 1024 * 1024: "5.0 MiB",
		-1:              "0 B",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "menu.json"), make([]byte, 2048), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	h := GetSysHealth(dir)
	if h.DataDiskSize != "2.0 KiB" {
		t.Errorf("Expected '2.0 KiB', got '%s'", h.DataDiskSize)
	}
	if h.Goroutines < 1 {
		t.Errorf("Expected at least one goroutine, got %d", h.Goroutines)
	}

	if got := GetSysHealth(filepath.Join(dir, "missing")).DataDiskSize; got != "0 B" {
		t.Errorf("Expected '0 B' for a missing dir, got '%s'", got)
	}
}
