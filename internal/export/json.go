package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focusbox/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID        int64  `json:"id"`
	Minutes   int    `json:"minutes"`
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
	Completed string `json:"completed_at,omitempty"`
}

func ToJSON(sessions []store.FocusSession, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		completedStr := ""
		if s.CompletedAt != nil {
			completedStr = s.CompletedAt.Local().Format(time.RFC3339)
		}
		out.Sessions = append(out.Sessions, jsonSession{
			ID:        s.ID,
			Minutes:   s.Minutes,
			Status:    s.Status,
			StartedAt: s.StartedAt.Local().Format(time.RFC3339),
			Completed: completedStr,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
