package ecg

import (
	"testing"

	"github.com/merli/hearttrack-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		SampleRate:        4, // 4 ticks per second keeps the fixtures readable
		ThresholdFraction: 0.6,
		Boundaries:        []float64{0, 2, 4},
		Labels:            []string{"sitting", "walking"},
	}
}

// beatFixture builds a series with clear R peaks at ticks 2, 6 and 14,
// i.e. elapsed 0.5s, 1.5s and 3.5s at 4 ticks/second.
func beatFixture() []models.Sample {
	ecg := []float64{0, 0.2, 1.0, 0.2, 0, 0.1, 0.9, 0.1, 0, 0, 0.1, 0, 0, 0.2, 0.95, 0.2, 0}
	samples := make([]models.Sample, len(ecg))
	for i, v := range ecg {
		samples[i] = models.Sample{Seq: int64(i), TimeTick: int64(i), ECG: v}
	}
	return samples
}

func TestPipelineRun(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	result := p.Run(beatFixture())

	// Elapsed time derived from the first tick at the configured rate.
	require.Equal(t, 17, result.Samples.Len())
	assert.InDelta(t, 0.0, result.Samples.Samples[0].ElapsedSeconds, 1e-9)
	assert.InDelta(t, 4.0, result.Samples.Samples[16].ElapsedSeconds, 1e-9)

	// Sample labels follow the boundary table; the final sample sits at the
	// last boundary and stays unlabeled.
	assert.Equal(t, "sitting", result.Samples.Samples[0].ActivityLabel)
	assert.Equal(t, "walking", result.Samples.Samples[8].ActivityLabel)
	assert.Equal(t, "", result.Samples.Samples[16].ActivityLabel)

	// Peaks at 0.5s, 1.5s, 3.5s: the first is structurally dropped.
	require.Equal(t, 2, result.Beats.Len())
	assert.Equal(t, 0, result.DroppedBeats)

	first := result.Beats.Beats[0]
	assert.InDelta(t, 1.5, first.PeakElapsedSeconds, 1e-9)
	assert.InDelta(t, 1.0, first.RRInterval, 1e-9)
	assert.InDelta(t, 60.0, first.RateBPM, 1e-9)
	assert.Equal(t, "sitting", first.ActivityLabel)

	second := result.Beats.Beats[1]
	assert.InDelta(t, 3.5, second.PeakElapsedSeconds, 1e-9)
	assert.InDelta(t, 2.0, second.RRInterval, 1e-9)
	assert.InDelta(t, 30.0, second.RateBPM, 1e-9)
	assert.Equal(t, "walking", second.ActivityLabel)
}

func TestPipelineBeatAndSampleLabelsAgree(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	result := p.Run(beatFixture())

	// A beat's label must match the label of the sample at its peak.
	for _, beat := range result.Beats.Beats {
		for _, sample := range result.Samples.Samples {
			if sample.ElapsedSeconds == beat.PeakElapsedSeconds {
				assert.Equal(t, sample.ActivityLabel, beat.ActivityLabel)
			}
		}
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	result := p.Run(nil)

	assert.Equal(t, 0, result.Samples.Len())
	assert.Equal(t, 0, result.Beats.Len())
	assert.Equal(t, 0, result.DroppedBeats)
	assert.Len(t, result.Intervals, 2)
}

func TestPipelineSinglePeakYieldsNoBeats(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	ecg := []float64{0, 1, 0}
	samples := make([]models.Sample, len(ecg))
	for i, v := range ecg {
		samples[i] = models.Sample{TimeTick: int64(i), ECG: v}
	}

	result := p.Run(samples)
	assert.Equal(t, 0, result.Beats.Len())
}

func TestPipelineIdempotent(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	a := p.Run(beatFixture())
	b := p.Run(beatFixture())

	assert.Equal(t, a.Samples, b.Samples)
	assert.Equal(t, a.Beats, b.Beats)
	assert.Equal(t, a.DroppedBeats, b.DroppedBeats)
}

func TestPipelineRejectsBadConfig(t *testing.T) {
	var cfgErr *ConfigError

	cfg := testConfig()
	cfg.ThresholdFraction = 0
	_, err := NewPipeline(cfg)
	require.ErrorAs(t, err, &cfgErr)

	cfg = testConfig()
	cfg.ThresholdFraction = 1.5
	_, err = NewPipeline(cfg)
	require.ErrorAs(t, err, &cfgErr)

	cfg = testConfig()
	cfg.SampleRate = 0
	_, err = NewPipeline(cfg)
	require.ErrorAs(t, err, &cfgErr)

	cfg = testConfig()
	cfg.Boundaries = []float64{0, 5, 5}
	_, err = NewPipeline(cfg)
	require.ErrorAs(t, err, &cfgErr)
}

func TestPipelineNonZeroFirstTick(t *testing.T) {
	p, err := NewPipeline(testConfig())
	require.NoError(t, err)

	samples := []models.Sample{
		{TimeTick: 1000, ECG: 0},
		{TimeTick: 1001, ECG: 1},
		{TimeTick: 1002, ECG: 0},
	}

	result := p.Run(samples)
	assert.InDelta(t, 0.0, result.Samples.Samples[0].ElapsedSeconds, 1e-9)
	assert.InDelta(t, 0.5, result.Samples.Samples[2].ElapsedSeconds, 1e-9)
}
