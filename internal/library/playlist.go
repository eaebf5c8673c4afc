package library

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseM3U reads an extended M3U playlist and returns its tracks in file
// order. Relative entries are resolved against the playlist's directory.
// Entries without a preceding #EXTINF line get a title derived from the
// filename.
func ParseM3U(path string) ([]Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	base := filepath.Dir(path)

	var tracks []Track
	var pendingTitle string

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if strings.HasPrefix(line, "#EXTINF:") {
				pendingTitle = extinfTitle(line)
			}
			continue
		}

		entry := line
		if !filepath.IsAbs(entry) && !strings.Contains(entry, "://") {
			entry = filepath.Join(base, entry)
		}

		title := pendingTitle
		if title == "" {
			title = titleFromFilename(filepath.Base(line))
		}
		tracks = append(tracks, Track{Path: entry, Title: title})
		pendingTitle = ""
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return tracks, nil
}

// extinfTitle extracts the display title from "#EXTINF:123,Artist - Title".
func extinfTitle(line string) string {
	rest := strings.TrimPrefix(line, "#EXTINF:")
	if i := strings.IndexByte(rest, ','); i >= 0 {
		return strings.TrimSpace(rest[i+1:])
	}
	return ""
}

// Load builds the track collection: from an M3U playlist when one is given,
// otherwise by scanning the library directory.
func Load(playlistPath, dir string) ([]Track, error) {
	if playlistPath != "" {
		return ParseM3U(playlistPath)
	}
	return Scan(dir)
}
