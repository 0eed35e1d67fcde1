// internal/store/sqlite.go
package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    job_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    status TEXT NOT NULL,
    result TEXT NOT NULL DEFAULT '',
    failure TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTask records a freshly accepted task.
func (s *SQLiteStore) SaveTask(t *Task) error {
	_, err := s.db.Exec(
		"INSERT INTO tasks (job_id, kind, payload, status, created_at) VALUES (?, ?, ?, ?, ?)",
		t.JobID, t.Kind, t.Payload, t.Status, t.CreatedAt.Unix(),
	)
	return err
}

// FinishTask writes a task's terminal outcome.
func (s *SQLiteStore) FinishTask(jobID, status, result, failure string) error {
	res, err := s.db.Exec(
		"UPDATE tasks SET status = ?, result = ?, failure = ? WHERE job_id = ?",
		status, result, failure, jobID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetTask(jobID string) (*Task, error) {
	var t Task
	var createdAt int64
	err := s.db.QueryRow(
		"SELECT job_id, kind, payload, status, result, failure, created_at FROM tasks WHERE job_id = ?",
		jobID,
	).Scan(&t.JobID, &t.Kind, &t.Payload, &t.Status, &t.Result, &t.Failure, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.CreatedAt = time.Unix(createdAt, 0)
	return &t, nil
}

func (s *SQLiteStore) ListTasks() ([]*Task, error) {
	rows, err := s.db.Query(
		"SELECT job_id, kind, payload, status, result, failure, created_at FROM tasks ORDER BY created_at DESC, job_id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taskList []*Task
	for rows.Next() {
		var t Task
		var createdAt int64
		if err := rows.Scan(&t.JobID, &t.Kind, &t.Payload, &t.Status, &t.Result, &t.Failure, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt = time.Unix(createdAt, 0)
		taskList = append(taskList, &t)
	}
	return taskList, rows.Err()
}
