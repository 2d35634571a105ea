package models

// HRVSummary holds heart-rate-variability statistics over one analysis run
type HRVSummary struct {
	BeatCount       int     `json:"beatCount"`
	DroppedBeats    int     `json:"droppedBeats"` // Degenerate RR intervals excluded during derivation
	MeanBPM         float64 `json:"meanBpm"`
	MinBPM          float64 `json:"minBpm"`
	MaxBPM          float64 `json:"maxBpm"`
	MeanRRSeconds   float64 `json:"meanRrSeconds"`
	MedianRRSeconds float64 `json:"medianRrSeconds"`
	SDNNSeconds     float64 `json:"sdnnSeconds"`
	RMSSDSeconds    float64 `json:"rmssdSeconds"`
	PNN50Percent    float64 `json:"pnn50Percent"`
}

// HeartRateZone represents one training zone derived from the subject's age
type HeartRateZone struct {
	Name           string  `json:"name"`
	MinBPM         float64 `json:"minBpm"`
	MaxBPM         float64 `json:"maxBpm"`
	SecondsInZone  float64 `json:"secondsInZone"`
	PercentOfBeats float64 `json:"percentOfBeats"`
}

// ZoneReport is the full zone table for one subject age
type ZoneReport struct {
	Age       int             `json:"age"`
	MaxHRBPM  float64         `json:"maxHrBpm"` // 220 - age
	Zones     []HeartRateZone `json:"zones"`
	BeatCount int             `json:"beatCount"`
}
