package service

import (
	"testing"

	"github.com/merli/hearttrack-backend-go/internal/ecg"
	"github.com/merli/hearttrack-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecordingStore is a RecordingStore mock backed by testify
type MockRecordingStore struct {
	mock.Mock
}

func (m *MockRecordingStore) CreateRecording(rec *models.Recording, samples []models.Sample) error {
	args := m.Called(rec, samples)
	return args.Error(0)
}

func (m *MockRecordingStore) GetRecordings() ([]models.Recording, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recording), args.Error(1)
}

func (m *MockRecordingStore) GetRecordingByID(id string) (*models.Recording, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recording), args.Error(1)
}

func (m *MockRecordingStore) GetSamples(recordingID string) ([]models.Sample, error) {
	args := m.Called(recordingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sample), args.Error(1)
}

func (m *MockRecordingStore) DeleteRecording(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func defaultsForTest() ecg.Config {
	return ecg.Config{
		SampleRate:        4,
		ThresholdFraction: 0.6,
		Boundaries:        []float64{0, 2, 4},
		Labels:            []string{"sitting", "walking"},
	}
}

// fixtureSamples has R peaks at ticks 2, 6 and 14 (0.5s, 1.5s, 3.5s at 4
// ticks per second).
func fixtureSamples() []models.Sample {
	ecgValues := []float64{0, 0.2, 1.0, 0.2, 0, 0.1, 0.9, 0.1, 0, 0, 0.1, 0, 0, 0.2, 0.95, 0.2, 0}
	samples := make([]models.Sample, len(ecgValues))
	for i, v := range ecgValues {
		samples[i] = models.Sample{Seq: int64(i), TimeTick: int64(i), ECG: v}
	}
	return samples
}

func fixtureRecording() *models.Recording {
	return &models.Recording{ID: "rec-1", Name: "test", SampleRate: 4, SampleCount: 17}
}

func TestAnalyzeLoadsSamplesAndCaches(t *testing.T) {
	store := new(MockRecordingStore)
	store.On("GetRecordingByID", "rec-1").Return(fixtureRecording(), nil).Once()
	store.On("GetSamples", "rec-1").Return(fixtureSamples(), nil).Once()

	svc := NewAnalysisService(store, defaultsForTest())

	result, err := svc.Analyze("rec-1", models.AnalysisRequest{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Beats.Len())

	// Second access is served from the snapshot; the store expectations
	// above are Once, so another load would fail the mock assertions.
	again, err := svc.Result("rec-1")
	require.NoError(t, err)
	assert.Same(t, result, again)

	store.AssertExpectations(t)
}

func TestAnalyzeUnknownRecording(t *testing.T) {
	store := new(MockRecordingStore)
	store.On("GetRecordingByID", "missing").Return(nil, nil)

	svc := NewAnalysisService(store, defaultsForTest())

	result, err := svc.Analyze("missing", models.AnalysisRequest{})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestAnalyzeRejectsBadThreshold(t *testing.T) {
	store := new(MockRecordingStore)
	svc := NewAnalysisService(store, defaultsForTest())

	_, err := svc.AnalyzeSamples("rec-1", fixtureSamples(), false, models.AnalysisRequest{ThresholdFraction: 2})
	var cfgErr *ecg.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestReanalyzeReplacesSnapshot(t *testing.T) {
	store := new(MockRecordingStore)
	svc := NewAnalysisService(store, defaultsForTest())

	first, err := svc.AnalyzeSamples("rec-1", fixtureSamples(), false, models.AnalysisRequest{})
	require.NoError(t, err)

	// A stricter threshold keeps only the tallest peak: no beats remain.
	second, err := svc.AnalyzeSamples("rec-1", fixtureSamples(), false, models.AnalysisRequest{ThresholdFraction: 1})
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.Beats.Len())

	cached, err := svc.Result("rec-1")
	require.NoError(t, err)
	assert.Same(t, second, cached)
}

func TestHRVSummary(t *testing.T) {
	store := new(MockRecordingStore)
	svc := NewAnalysisService(store, defaultsForTest())

	_, err := svc.AnalyzeSamples("rec-1", fixtureSamples(), false, models.AnalysisRequest{})
	require.NoError(t, err)

	summary, err := svc.HRVSummary("rec-1")
	require.NoError(t, err)
	require.NotNil(t, summary)

	// Beats at 1.5s (rr=1.0, 60bpm) and 3.5s (rr=2.0, 30bpm).
	assert.Equal(t, 2, summary.BeatCount)
	assert.Equal(t, 0, summary.DroppedBeats)
	assert.InDelta(t, 45.0, summary.MeanBPM, 1e-9)
	assert.InDelta(t, 30.0, summary.MinBPM, 1e-9)
	assert.InDelta(t, 60.0, summary.MaxBPM, 1e-9)
	assert.InDelta(t, 1.5, summary.MeanRRSeconds, 1e-9)
	assert.InDelta(t, 100.0, summary.PNN50Percent, 1e-9)
}

func TestActivitySummaries(t *testing.T) {
	store := new(MockRecordingStore)
	svc := NewAnalysisService(store, defaultsForTest())

	_, err := svc.AnalyzeSamples("rec-1", fixtureSamples(), false, models.AnalysisRequest{})
	require.NoError(t, err)

	summaries, err := svc.ActivitySummaries("rec-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Sorted by label: sitting (beat at 1.5s), walking (beat at 3.5s).
	assert.Equal(t, "sitting", summaries[0].Label)
	assert.Equal(t, 1, summaries[0].BeatCount)
	assert.InDelta(t, 60.0, summaries[0].MeanBPM, 1e-9)

	assert.Equal(t, "walking", summaries[1].Label)
	assert.Equal(t, 1, summaries[1].BeatCount)
	assert.InDelta(t, 30.0, summaries[1].MeanBPM, 1e-9)
}

func TestZoneReport(t *testing.T) {
	store := new(MockRecordingStore)
	svc := NewAnalysisService(store, defaultsForTest())

	_, err := svc.AnalyzeSamples("rec-1", fixtureSamples(), false, models.AnalysisRequest{})
	require.NoError(t, err)

	report, err := svc.ZoneReport("rec-1", 120)
	require.NoError(t, err)
	require.NotNil(t, report)

	// Max HR for age 120 is 100 bpm; the 60 bpm beat lands in the light
	// zone (60-70), the 30 bpm beat is below every zone.
	assert.InDelta(t, 100.0, report.MaxHRBPM, 1e-9)
	require.Len(t, report.Zones, 5)
	assert.Equal(t, "light", report.Zones[1].Name)
	assert.InDelta(t, 1.0, report.Zones[1].SecondsInZone, 1e-9)
	assert.InDelta(t, 50.0, report.Zones[1].PercentOfBeats, 1e-9)
	assert.InDelta(t, 0.0, report.Zones[0].SecondsInZone, 1e-9)
}

func TestZoneReportRejectsBadAge(t *testing.T) {
	store := new(MockRecordingStore)
	svc := NewAnalysisService(store, defaultsForTest())

	_, err := svc.ZoneReport("rec-1", 0)
	require.Error(t, err)

	_, err = svc.ZoneReport("rec-1", 200)
	require.Error(t, err)
}
