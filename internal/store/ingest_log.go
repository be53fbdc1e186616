package store

import (
	"fmt"
	"time"
)

// IngestLog is one recorded ingest batch.
type IngestLog struct {
	ID                int64      `json:"id"`
	FileCount         int        `json:"fileCount"`
	Filenames         string     `json:"filenames"`
	RowsExtracted     int        `json:"rowsExtracted"`
	RowsAppended      int        `json:"rowsAppended"`
	DuplicatesSkipped int        `json:"duplicatesSkipped"`
	FailedFiles       int        `json:"failedFiles"`
	Status            string     `json:"status"` // processing/done/error
	ErrorMessage      string     `json:"errorMessage,omitempty"`
	StartedAt         time.Time  `json:"startedAt"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

// CreateIngestLog records the start of an ingest batch and returns its id.
func (s *Store) CreateIngestLog(fileCount int, filenames string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO ingest_logs (file_count, filenames, status)
		VALUES (?, ?, 'processing')
	`, fileCount, filenames)
	if err != nil {
		return 0, fmt.Errorf("failed to create ingest log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ingest log id: %w", err)
	}
	return id, nil
}

// UpdateIngestLog completes an ingest log entry.
func (s *Store) UpdateIngestLog(id int64, rowsExtracted, rowsAppended, duplicatesSkipped, failedFiles int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE ingest_logs SET
			rows_extracted = ?,
			rows_appended = ?,
			duplicates_skipped = ?,
			failed_files = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, rowsExtracted, rowsAppended, duplicatesSkipped, failedFiles, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update ingest log: %w", err)
	}
	return nil
}

// ListIngestLogs returns the most recent ingest batches, newest first.
func (s *Store) ListIngestLogs(limit int) ([]IngestLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, file_count, filenames, rows_extracted, rows_appended,
		       duplicates_skipped, failed_files, status, error_message,
		       started_at, completed_at
		FROM ingest_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingest logs: %w", err)
	}
	defer rows.Close()

	var logs []IngestLog
	for rows.Next() {
		var l IngestLog
		if err := rows.Scan(&l.ID, &l.FileCount, &l.Filenames, &l.RowsExtracted,
			&l.RowsAppended, &l.DuplicatesSkipped, &l.FailedFiles, &l.Status,
			&l.ErrorMessage, &l.StartedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingest log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
