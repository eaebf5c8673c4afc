package library

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlaylist(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mix.m3u")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseM3U(t *testing.T) {
	dir := t.TempDir()
	path := writePlaylist(t, dir, `#EXTM3U
#EXTINF:180,Artist - Rainy Night
rain.mp3

#EXTINF:240,Slow Waves
/music/waves.flac
untitled.ogg
`)

	tracks, err := ParseM3U(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}

	if tracks[0].Title != "Artist - Rainy Night" {
		t.Errorf("title[0] = %q", tracks[0].Title)
	}
	if tracks[0].Path != filepath.Join(dir, "rain.mp3") {
		t.Errorf("relative entry not resolved: %q", tracks[0].Path)
	}
	if tracks[1].Path != "/music/waves.flac" {
		t.Errorf("absolute entry changed: %q", tracks[1].Path)
	}
	if tracks[2].Title != "untitled" {
		t.Errorf("fallback title = %q", tracks[2].Title)
	}
}

func TestParseM3UKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	path := writePlaylist(t, dir, "c.mp3\na.mp3\nb.mp3\n")

	tracks, err := ParseM3U(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"c", "a", "b"}
	for i, w := range want {
		if tracks[i].Title != w {
			t.Fatalf("track %d = %q, want %q", i, tracks[i].Title, w)
		}
	}
}

func TestParseM3UMissingFile(t *testing.T) {
	if _, err := ParseM3U(filepath.Join(t.TempDir(), "nope.m3u")); err == nil {
		t.Fatal("expected error")
	}
}

func TestExtinfTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#EXTINF:123,Artist - Title", "Artist - Title"},
		{"#EXTINF:-1, spaced ", "spaced"},
		{"#EXTINF:42", ""},
	}
	for _, tt := range tests {
		if got := extinfTitle(tt.in); got != tt.want {
			t.Errorf("extinfTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadPrefersPlaylist(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scanned.mp3"))
	path := writePlaylist(t, dir, "listed.mp3\n")

	tracks, err := Load(path, dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].Title != "listed" {
		t.Fatalf("expected playlist entry, got %+v", tracks)
	}

	tracks, err = Load("", dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(tracks) != 1 || tracks[0].Title != "scanned" {
		t.Fatalf("expected scanned entry, got %+v", tracks)
	}
}
