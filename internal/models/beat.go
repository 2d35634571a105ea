package models

// Beat represents a detected heartbeat with its beat-to-beat timing values.
// Every beat in a BeatSeries has a valid predecessor: the first detected
// peak of a run has no preceding interval and is never represented here.
type Beat struct {
	PeakElapsedSeconds float64 `json:"peakElapsedSeconds"`
	RRInterval         float64 `json:"rrInterval"`              // Seconds since previous beat, always > 0
	RateBPM            float64 `json:"rateBpm"`                 // 60 / RRInterval
	MidpointSeconds    float64 `json:"midpointSeconds"`         // Mean of this and previous peak time
	ActivityLabel      string  `json:"activityLabel,omitempty"` // Empty = unlabeled
}

// BeatSeries is an ordered sequence of beats, strictly increasing in
// PeakElapsedSeconds.
type BeatSeries struct {
	Beats []Beat `json:"beats"`
}

// Len returns the number of retained beats.
func (b *BeatSeries) Len() int {
	return len(b.Beats)
}

// Rates returns the instantaneous heart rates as a flat slice.
func (b *BeatSeries) Rates() []float64 {
	rates := make([]float64, len(b.Beats))
	for i, beat := range b.Beats {
		rates[i] = beat.RateBPM
	}
	return rates
}

// RRIntervals returns the RR intervals in seconds as a flat slice.
func (b *BeatSeries) RRIntervals() []float64 {
	intervals := make([]float64, len(b.Beats))
	for i, beat := range b.Beats {
		intervals[i] = beat.RRInterval
	}
	return intervals
}
