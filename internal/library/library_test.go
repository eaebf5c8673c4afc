package library

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b-track.mp3"))
	writeFile(t, filepath.Join(dir, "a-track.flac"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "cover.jpg"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	tracks, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Title != "a track" || tracks[1].Title != "b track" {
		t.Fatalf("unexpected order: %q, %q", tracks[0].Title, tracks[1].Title)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScanEmptyDir(t *testing.T) {
	tracks, err := Scan(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %d", len(tracks))
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"03_rainy-night.mp3", "03 rainy night"},
		{"lofi.flac", "lofi"},
		{"a__b.ogg", "a b"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := titleFromFilename(tt.in); got != tt.want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
