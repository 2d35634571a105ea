package ecg

import (
	"github.com/merli/hearttrack-backend-go/internal/models"
)

// Config holds the per-run pipeline settings.
type Config struct {
	SampleRate        float64 // Device ticks per second
	ThresholdFraction float64 // Fraction of max ECG used as detection threshold, in (0, 1]
	Boundaries        []float64
	Labels            []string
}

// Validate checks the configuration before any data is processed.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return configErrorf("sampleRate", "must be positive, got %v", c.SampleRate)
	}
	if c.ThresholdFraction <= 0 || c.ThresholdFraction > 1 {
		return configErrorf("thresholdFraction", "must be in (0, 1], got %v", c.ThresholdFraction)
	}
	_, err := NewSegmenter(c.Boundaries, c.Labels)
	return err
}

// Result holds the two artifacts of one analysis run: the enriched sample
// series and the beat series. Both are constructed fresh per run and are
// not mutated afterwards; a re-run replaces the whole Result.
type Result struct {
	Samples      models.SampleSeries
	Beats        models.BeatSeries
	Intervals    []models.ActivityInterval
	DroppedBeats int // Beats excluded for degenerate RR intervals
}

// Pipeline composes peak detection, beat-interval derivation and activity
// segmentation into one synchronous pass over a fully loaded sample series.
type Pipeline struct {
	cfg       Config
	segmenter *Segmenter
}

// NewPipeline validates cfg and builds a pipeline. All configuration
// errors are reported here, before Run ever sees a sample.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seg, err := NewSegmenter(cfg.Boundaries, cfg.Labels)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, segmenter: seg}, nil
}

// Segmenter exposes the run's boundary/label table.
func (p *Pipeline) Segmenter() *Segmenter {
	return p.segmenter
}

// Run processes one sample series to completion. The input slice is not
// retained; the result owns its own copies. An empty series is not an
// error: it yields an empty result so the caller can report "no beats
// detected" instead of failing.
func (p *Pipeline) Run(samples []models.Sample) *Result {
	result := &Result{
		Samples: models.SampleSeries{
			Samples:    make([]models.Sample, len(samples)),
			SampleRate: p.cfg.SampleRate,
		},
		Intervals: p.segmenter.Intervals(),
	}
	copy(result.Samples.Samples, samples)

	if len(samples) == 0 {
		return result
	}

	// Derive elapsed time and activity label per sample.
	t0 := samples[0].TimeTick
	for i := range result.Samples.Samples {
		s := &result.Samples.Samples[i]
		s.ElapsedSeconds = float64(s.TimeTick-t0) / p.cfg.SampleRate
		if label, ok := p.segmenter.Label(s.ElapsedSeconds); ok {
			s.ActivityLabel = label
		}
	}

	// Detect peaks and derive beat-to-beat timing.
	peaks := DetectPeaks(result.Samples.ECGValues(), p.cfg.ThresholdFraction)
	peakTimes := make([]float64, len(peaks))
	for i, idx := range peaks {
		peakTimes[i] = result.Samples.Samples[idx].ElapsedSeconds
	}

	result.Beats, result.DroppedBeats = DeriveBeats(peakTimes)

	// Label each retained beat with the same table the samples used.
	for i := range result.Beats.Beats {
		b := &result.Beats.Beats[i]
		if label, ok := p.segmenter.Label(b.PeakElapsedSeconds); ok {
			b.ActivityLabel = label
		}
	}

	return result
}
