package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) StartSession(minutes int) (*FocusSession, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (minutes, status, started_at) VALUES (?, 'running', ?)`,
		minutes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("start session id: %w", err)
	}
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*FocusSession, error) {
	fs := &FocusSession{}
	var startedAt string
	var completedAt sql.NullString

	err := s.db.QueryRow(
		`SELECT id, minutes, status, started_at, completed_at FROM focus_sessions WHERE id = ?`, id,
	).Scan(&fs.ID, &fs.Minutes, &fs.Status, &startedAt, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	fs.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		fs.CompletedAt = &t
	}
	return fs, nil
}

func (s *Store) CompleteSession(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE focus_sessions SET status = 'completed', completed_at = ? WHERE id = ?`,
		now, id,
	)
	return err
}

func (s *Store) CancelSession(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE focus_sessions SET status = 'cancelled', completed_at = ? WHERE id = ?`,
		now, id,
	)
	return err
}

func (s *Store) ListSessions(limit int) ([]FocusSession, error) {
	query := `SELECT id, minutes, status, started_at, completed_at FROM focus_sessions ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []FocusSession
	for rows.Next() {
		var fs FocusSession
		var startedAt string
		var completedAt sql.NullString
		if err := rows.Scan(&fs.ID, &fs.Minutes, &fs.Status, &startedAt, &completedAt); err != nil {
			return nil, err
		}
		fs.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if completedAt.Valid {
			t, _ := time.Parse(time.RFC3339, completedAt.String)
			fs.CompletedAt = &t
		}
		sessions = append(sessions, fs)
	}
	return sessions, rows.Err()
}

// GetDailyFocus aggregates completed sessions per day in [from, to).
func (s *Store) GetDailyFocus(from, to time.Time) ([]DailyFocus, error) {
	rows, err := s.db.Query(`
		SELECT date(started_at) AS day, COALESCE(SUM(minutes), 0), COUNT(*)
		FROM focus_sessions
		WHERE status = 'completed'
		  AND started_at >= ? AND started_at < ?
		GROUP BY day
		ORDER BY day`,
		from.Format(time.RFC3339), to.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily focus: %w", err)
	}
	defer rows.Close()

	var days []DailyFocus
	for rows.Next() {
		var d DailyFocus
		if err := rows.Scan(&d.Date, &d.TotalMinutes, &d.SessionCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetTodayFocus returns today's completed focus minutes.
func (s *Store) GetTodayFocus() (int64, error) {
	today := time.Now().UTC().Format("2006-01-02")
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(minutes), 0)
		FROM focus_sessions
		WHERE date(started_at) = ? AND status = 'completed'`, today,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
