package repository

import (
	"database/sql"
	"fmt"

	"github.com/merli/hearttrack-backend-go/internal/models"
)

// RecordingRepository handles database operations for recordings and their
// raw samples. Derived analysis artifacts are never stored here.
type RecordingRepository struct {
	db *sql.DB
}

// NewRecordingRepository creates a new recording repository
func NewRecordingRepository(db *sql.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// CreateRecording stores a recording and its raw samples in one transaction
func (r *RecordingRepository) CreateRecording(rec *models.Recording, samples []models.Sample) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO recordings (id, name, sample_rate, sample_count, duration_seconds, has_accel, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.SampleRate, rec.SampleCount, rec.DurationSeconds, rec.HasAccel, rec.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recording: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO samples (recording_id, seq, time_tick, ecg, acc_x, acc_y, acc_z)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(rec.ID, s.Seq, s.TimeTick, s.ECG, s.AccX, s.AccY, s.AccZ); err != nil {
			return fmt.Errorf("failed to insert sample %d: %w", s.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recording: %w", err)
	}
	return nil
}

// GetRecordings lists all recordings, newest first
func (r *RecordingRepository) GetRecordings() ([]models.Recording, error) {
	rows, err := r.db.Query(`
		SELECT id, name, sample_rate, sample_count, duration_seconds, has_accel, uploaded_at
		FROM recordings ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recordings: %w", err)
	}
	defer rows.Close()

	var recordings []models.Recording
	for rows.Next() {
		var rec models.Recording
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.SampleRate, &rec.SampleCount,
			&rec.DurationSeconds, &rec.HasAccel, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recording: %w", err)
		}
		recordings = append(recordings, rec)
	}
	return recordings, rows.Err()
}

// GetRecordingByID retrieves a single recording, or nil when absent
func (r *RecordingRepository) GetRecordingByID(id string) (*models.Recording, error) {
	var rec models.Recording
	err := r.db.QueryRow(`
		SELECT id, name, sample_rate, sample_count, duration_seconds, has_accel, uploaded_at
		FROM recordings WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &rec.SampleRate, &rec.SampleCount,
			&rec.DurationSeconds, &rec.HasAccel, &rec.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recording: %w", err)
	}
	return &rec, nil
}

// GetSamples loads the raw samples of a recording in load order
func (r *RecordingRepository) GetSamples(recordingID string) ([]models.Sample, error) {
	rows, err := r.db.Query(`
		SELECT seq, time_tick, ecg, acc_x, acc_y, acc_z
		FROM samples WHERE recording_id = ? ORDER BY seq`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		var s models.Sample
		if err := rows.Scan(&s.Seq, &s.TimeTick, &s.ECG, &s.AccX, &s.AccY, &s.AccZ); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// DeleteRecording removes a recording and its samples
func (r *RecordingRepository) DeleteRecording(id string) error {
	result, err := r.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
