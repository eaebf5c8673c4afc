// Package library loads the track collection the player works from.
// The collection is built once at startup and never mutated afterwards.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Track is one playable media entry.
type Track struct {
	Path  string
	Title string
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".wav":  true,
	".m4a":  true,
}

// Scan reads dir for audio files and returns them as tracks sorted by
// filename. Subdirectories are not descended into.
func Scan(dir string) ([]Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}

	var tracks []Track
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !audioExtensions[ext] {
			continue
		}
		tracks = append(tracks, Track{
			Path:  filepath.Join(dir, e.Name()),
			Title: titleFromFilename(e.Name()),
		})
	}

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Path < tracks[j].Path })
	return tracks, nil
}

// titleFromFilename turns "03_rainy-night.mp3" into "03 rainy night".
func titleFromFilename(name string) string {
	title := strings.TrimSuffix(name, filepath.Ext(name))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return strings.Join(strings.Fields(title), " ")
}
