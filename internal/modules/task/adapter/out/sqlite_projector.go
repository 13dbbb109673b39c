package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/modules/task/domain"
	taskout "taskdeck/internal/modules/task/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteTaskProjector maintains a flat tasks table for ad hoc queries
// and the search command. The JSON snapshot stays the source of
// truth; the table can be rebuilt from it at any time.
type SQLiteTaskProjector struct {
	db *sql.DB
}

func NewSQLiteTaskProjector(dbPath string) (taskout.TaskProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteTaskProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteTaskProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
  username TEXT NOT NULL,
  id TEXT NOT NULL,
  title TEXT NOT NULL,
  group_id TEXT NOT NULL,
  importance TEXT NOT NULL,
  kind TEXT NOT NULL,
  status TEXT NOT NULL,
  due_at TEXT,
  created_at TEXT NOT NULL,
  completed_at TEXT,
  total_focus_minutes INTEGER NOT NULL,
  progress_value REAL NOT NULL,
  target_value REAL NOT NULL,
  PRIMARY KEY (username, id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) Upsert(ctx context.Context, username string, task domain.Task) error {
	const stmt = `
INSERT INTO tasks (username, id, title, group_id, importance, kind, status, due_at, created_at, completed_at, total_focus_minutes, progress_value, target_value)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(username, id) DO UPDATE SET
  title=excluded.title,
  group_id=excluded.group_id,
  importance=excluded.importance,
  kind=excluded.kind,
  status=excluded.status,
  due_at=excluded.due_at,
  created_at=excluded.created_at,
  completed_at=excluded.completed_at,
  total_focus_minutes=excluded.total_focus_minutes,
  progress_value=excluded.progress_value,
  target_value=excluded.target_value;
`
	_, err := s.db.ExecContext(ctx, stmt,
		username,
		task.ID,
		task.Title,
		task.GroupID,
		string(task.Importance),
		string(task.Kind),
		string(task.Status),
		formatOptional(task.DueAt),
		task.CreatedAt.Format(time.RFC3339),
		formatOptional(task.CompletedAt),
		task.TotalFocusMinutes,
		task.ProgressValue,
		task.TargetValue,
	)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) Delete(ctx context.Context, username, taskID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE username = ? AND id = ?`, username, taskID); err != nil {
		return fmt.Errorf("delete task row: %w", err)
	}
	return nil
}

func (s *SQLiteTaskProjector) Reset(ctx context.Context, username string, tasks []domain.Task) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE username = ?`, username); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	for _, task := range tasks {
		if err := s.Upsert(ctx, username, task); err != nil {
			return err
		}
	}
	return nil
}

func formatOptional(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
