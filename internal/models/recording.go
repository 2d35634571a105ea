package models

import "time"

// Recording represents one uploaded sensor session
type Recording struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	SampleRate      float64   `json:"sampleRate" db:"sample_rate"`           // Device ticks per second
	SampleCount     int64     `json:"sampleCount" db:"sample_count"`
	DurationSeconds float64   `json:"durationSeconds" db:"duration_seconds"`
	HasAccel        bool      `json:"hasAccel" db:"has_accel"`
	UploadedAt      time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// AnalysisRequest carries per-run pipeline settings supplied by the client.
// Zero values fall back to the server defaults.
type AnalysisRequest struct {
	ThresholdFraction  float64   `json:"thresholdFraction" form:"threshold"`
	ActivityBoundaries []float64 `json:"activityBoundaries"`
	ActivityLabels     []string  `json:"activityLabels"`
}
