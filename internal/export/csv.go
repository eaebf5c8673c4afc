package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focusbox/internal/store"
)

func ToCSV(sessions []store.FocusSession, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Minutes", "Status", "Started", "Completed"}); err != nil {
		return err
	}

	for _, s := range sessions {
		completedStr := ""
		if s.CompletedAt != nil {
			completedStr = s.CompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			fmt.Sprintf("%d", s.ID),
			fmt.Sprintf("%d", s.Minutes),
			s.Status,
			s.StartedAt.Local().Format(time.RFC3339),
			completedStr,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
