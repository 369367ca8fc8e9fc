// Package logging records each game turn to a local sqlite database so
// sessions can be reviewed and parser output rated afterwards.
package logging

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Turn struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	SceneID   string    `json:"scene_id"`
	Input     string    `json:"input"`
	Backend   string    `json:"backend"`
	Command   string    `json:"command"`
	Output    string    `json:"output"`
	LatencyMS int64     `json:"latency_ms"`
	Rating    *int      `json:"rating,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type TranscriptLogger struct {
	db *sql.DB
}

func NewTranscriptLogger(path string) (*TranscriptLogger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := &TranscriptLogger{db: db}
	if err := logger.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return logger, nil
}

func (tl *TranscriptLogger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		scene_id TEXT NOT NULL,
		input TEXT NOT NULL,
		backend TEXT NOT NULL,
		command TEXT NOT NULL,
		output TEXT NOT NULL,
		latency_ms INTEGER NOT NULL,
		rating INTEGER,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_turns_timestamp ON turns(timestamp);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);
	`

	_, err := tl.db.Exec(schema)
	return err
}

// LogTurn stores one resolved turn. The command is serialized as JSON
// so transcripts stay useful when the command shape evolves.
func (tl *TranscriptLogger) LogTurn(sessionID, sceneID, input, backend string, command interface{}, output string, latency time.Duration) error {
	commandJSON, err := json.Marshal(command)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	_, err = tl.db.Exec(`
		INSERT INTO turns (session_id, scene_id, input, backend, command, output, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, sceneID, input, backend, string(commandJSON), output, latency.Milliseconds())

	return err
}

func (tl *TranscriptLogger) GetRecentTurns(limit int) ([]Turn, error) {
	rows, err := tl.db.Query(`
		SELECT id, timestamp, session_id, scene_id, input, backend, command, output, latency_ms, rating, notes
		FROM turns
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var rating sql.NullInt64
		var notes sql.NullString
		if err := rows.Scan(&t.ID, &t.Timestamp, &t.SessionID, &t.SceneID, &t.Input, &t.Backend, &t.Command, &t.Output, &t.LatencyMS, &rating, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			t.Rating = &r
		}
		t.Notes = notes.String
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// RateTurn attaches a quality rating and optional notes to a logged
// turn, for spot-checking the generative parser tiers.
func (tl *TranscriptLogger) RateTurn(id, rating int, notes string) error {
	result, err := tl.db.Exec(`UPDATE turns SET rating = ?, notes = ? WHERE id = ?`, rating, notes, id)
	if err != nil {
		return fmt.Errorf("failed to rate turn: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no turn with id %d", id)
	}
	return nil
}

func (tl *TranscriptLogger) Close() error {
	return tl.db.Close()
}
