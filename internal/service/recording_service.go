package service

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/merli/hearttrack-backend-go/internal/ingest"
	"github.com/merli/hearttrack-backend-go/internal/models"
)

// RecordingStore is the persistence surface the services need. The sqlite
// repository implements it; tests substitute a mock.
type RecordingStore interface {
	CreateRecording(rec *models.Recording, samples []models.Sample) error
	GetRecordings() ([]models.Recording, error)
	GetRecordingByID(id string) (*models.Recording, error)
	GetSamples(recordingID string) ([]models.Sample, error)
	DeleteRecording(id string) error
}

// RecordingService handles business logic for uploaded recordings
type RecordingService struct {
	store      RecordingStore
	sampleRate float64
}

// NewRecordingService creates a new recording service. sampleRate is the
// device tick rate in ticks per second.
func NewRecordingService(store RecordingStore, sampleRate float64) *RecordingService {
	return &RecordingService{store: store, sampleRate: sampleRate}
}

// Upload parses a sensor export and persists it as a new recording. The
// parsed samples are returned alongside the metadata so the caller can run
// the analysis pipeline without a second read.
func (s *RecordingService) Upload(name string, r io.Reader) (*models.Recording, []models.Sample, error) {
	parsed, err := ingest.ParseCSV(r)
	if err != nil {
		return nil, nil, err
	}

	rec := &models.Recording{
		ID:          uuid.NewString(),
		Name:        name,
		SampleRate:  s.sampleRate,
		SampleCount: int64(len(parsed.Samples)),
		HasAccel:    parsed.HasAccel,
		UploadedAt:  time.Now().UTC(),
	}
	if n := len(parsed.Samples); n > 0 {
		first := parsed.Samples[0].TimeTick
		last := parsed.Samples[n-1].TimeTick
		rec.DurationSeconds = float64(last-first) / s.sampleRate
	}

	if err := s.store.CreateRecording(rec, parsed.Samples); err != nil {
		return nil, nil, fmt.Errorf("failed to store recording: %w", err)
	}

	return rec, parsed.Samples, nil
}

// GetRecordings lists all stored recordings
func (s *RecordingService) GetRecordings() ([]models.Recording, error) {
	return s.store.GetRecordings()
}

// GetRecordingByID retrieves a single recording by ID
func (s *RecordingService) GetRecordingByID(id string) (*models.Recording, error) {
	return s.store.GetRecordingByID(id)
}

// GetSamples loads the raw samples of a recording
func (s *RecordingService) GetSamples(id string) ([]models.Sample, error) {
	return s.store.GetSamples(id)
}

// DeleteRecording removes a recording and its samples
func (s *RecordingService) DeleteRecording(id string) error {
	return s.store.DeleteRecording(id)
}
