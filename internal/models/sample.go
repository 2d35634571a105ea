package models

// Sample represents one sensor reading from the wearable device
type Sample struct {
	Seq      int64   `json:"seq" db:"seq"`                 // Position in load order
	TimeTick int64   `json:"timeTick" db:"time_tick"`      // Raw device tick counter
	ECG      float64 `json:"ecg" db:"ecg"`                 // Signed ECG amplitude
	AccX     float64 `json:"accX,omitempty" db:"acc_x"`    // Acceleration X (optional)
	AccY     float64 `json:"accY,omitempty" db:"acc_y"`    // Acceleration Y (optional)
	AccZ     float64 `json:"accZ,omitempty" db:"acc_z"`    // Acceleration Z (optional)

	// Derived fields, filled by the analysis pipeline
	ElapsedSeconds float64 `json:"elapsedSeconds" db:"-"`
	ActivityLabel  string  `json:"activityLabel,omitempty" db:"-"` // Empty = unlabeled
}

// SampleSeries is an ordered sequence of samples. Order is load order and
// must equal chronological order; no re-sorting is ever performed.
type SampleSeries struct {
	Samples    []Sample `json:"samples"`
	HasAccel   bool     `json:"hasAccel"`
	SampleRate float64  `json:"sampleRate"` // Device ticks per second
}

// Len returns the number of samples in the series.
func (s *SampleSeries) Len() int {
	return len(s.Samples)
}

// ECGValues returns the ECG channel as a flat slice.
func (s *SampleSeries) ECGValues() []float64 {
	values := make([]float64, len(s.Samples))
	for i, sample := range s.Samples {
		values[i] = sample.ECG
	}
	return values
}

// SampleFilter represents query parameters for the samples endpoint
type SampleFilter struct {
	FromSeconds float64 `form:"from"`
	ToSeconds   float64 `form:"to"`
	Stride      int     `form:"stride"` // Keep every n-th sample, for plotting
}
