package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthbutler/swarm/pkg/models"
)

// Execution is one recorded run: the request, the final response, and
// whether any step produced a usable result. Messages and worker outputs
// live in their own tables keyed by the execution ID.
type Execution struct {
	ID        string    `json:"id"`
	UserInput string    `json:"user_input"`
	MediaRef  string    `json:"media_ref"`
	Response  string    `json:"response"`
	Succeeded bool      `json:"succeeded"`
	StartedAt time.Time `json:"started_at"`
}

// RecordExecution persists a completed execution with its full message log
// and worker outputs in one transaction. Returns the new execution ID.
func (db *DB) RecordExecution(userInput, mediaRef string, startedAt time.Time, result *models.ExecutionResult) (string, error) {
	id := uuid.New().String()

	err := db.Transaction(func(tx *sql.Tx) error {
		succeeded := 0
		if len(result.Succeeded()) > 0 {
			succeeded = 1
		}

		if _, err := tx.Exec(`
			INSERT INTO executions (id, user_input, media_ref, response, succeeded, started_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, userInput, mediaRef, result.Response, succeeded, formatTime(startedAt)); err != nil {
			return fmt.Errorf("insert execution: %w", err)
		}

		for i, m := range result.MessageLog {
			if _, err := tx.Exec(`
				INSERT INTO messages (execution_id, seq, from_participant, to_participant, kind, content, sent_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, id, i, string(m.From), string(m.To), string(m.Kind), m.Content, formatTime(m.Timestamp)); err != nil {
				return fmt.Errorf("insert message %d: %w", i, err)
			}
		}

		for i, o := range result.WorkerOutputs {
			failed := 0
			if o.Failed {
				failed = 1
			}
			if _, err := tx.Exec(`
				INSERT INTO worker_outputs (execution_id, seq, worker, task, result, failed)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, i, string(o.Worker), o.Task, o.Result, failed); err != nil {
				return fmt.Errorf("insert worker output %d: %w", i, err)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetExecution retrieves one execution by ID, or nil when not found.
func (db *DB) GetExecution(id string) (*Execution, error) {
	row := db.QueryRow(`
		SELECT id, user_input, media_ref, response, succeeded, started_at
		FROM executions WHERE id = ?
	`, id)

	e, err := scanExecution(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get execution: %w", err)
	}
	return e, nil
}

// ListRecentExecutions returns the newest executions first, at most limit.
func (db *DB) ListRecentExecutions(limit int) ([]Execution, error) {
	rows, err := db.Query(`
		SELECT id, user_input, media_ref, response, succeeded, started_at
		FROM executions ORDER BY started_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	defer rows.Close()

	var executions []Execution
	for rows.Next() {
		e, err := scanExecution(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		executions = append(executions, *e)
	}
	return executions, nil
}

// MessagesFor returns an execution's message log in send order.
func (db *DB) MessagesFor(executionID string) ([]models.Message, error) {
	rows, err := db.Query(`
		SELECT from_participant, to_participant, kind, content, sent_at
		FROM messages WHERE execution_id = ? ORDER BY seq
	`, executionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var from, to, kind, sentAt string
		if err := rows.Scan(&from, &to, &kind, &m.Content, &sentAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.From = models.Participant(from)
		m.To = models.Participant(to)
		m.Kind = models.MessageKind(kind)
		m.Timestamp, _ = parseTime(sentAt)
		messages = append(messages, m)
	}
	return messages, nil
}

// OutputsFor returns an execution's worker outputs in step order.
func (db *DB) OutputsFor(executionID string) ([]models.WorkerOutput, error) {
	rows, err := db.Query(`
		SELECT worker, task, result, failed
		FROM worker_outputs WHERE execution_id = ? ORDER BY seq
	`, executionID)
	if err != nil {
		return nil, fmt.Errorf("list worker outputs: %w", err)
	}
	defer rows.Close()

	var outputs []models.WorkerOutput
	for rows.Next() {
		var o models.WorkerOutput
		var worker string
		var failed int
		if err := rows.Scan(&worker, &o.Task, &o.Result, &failed); err != nil {
			return nil, fmt.Errorf("scan worker output: %w", err)
		}
		o.Worker = models.WorkerID(worker)
		o.Failed = failed != 0
		outputs = append(outputs, o)
	}
	return outputs, nil
}

func scanExecution(scan func(...any) error) (*Execution, error) {
	var e Execution
	var mediaRef sql.NullString
	var succeeded int
	var startedAt string
	if err := scan(&e.ID, &e.UserInput, &mediaRef, &e.Response, &succeeded, &startedAt); err != nil {
		return nil, err
	}
	if mediaRef.Valid {
		e.MediaRef = mediaRef.String
	}
	e.Succeeded = succeeded != 0
	e.StartedAt, _ = parseTime(startedAt)
	return &e, nil
}
