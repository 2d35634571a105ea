package service

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/merli/hearttrack-backend-go/internal/ecg"
	"github.com/merli/hearttrack-backend-go/internal/models"
	"github.com/merli/hearttrack-backend-go/internal/stats"
)

// AnalysisService runs the signal-to-events pipeline and owns the result
// of the latest run per recording. A re-run replaces the whole snapshot;
// nothing is mutated in place and nothing derived is persisted.
type AnalysisService struct {
	store    RecordingStore
	defaults ecg.Config

	mu        sync.RWMutex
	snapshots map[string]*ecg.Result
}

// NewAnalysisService creates a new analysis service with server defaults
// for threshold fraction, sample rate and activity schedule.
func NewAnalysisService(store RecordingStore, defaults ecg.Config) *AnalysisService {
	return &AnalysisService{
		store:     store,
		defaults:  defaults,
		snapshots: make(map[string]*ecg.Result),
	}
}

// configFor merges a client request with the server defaults.
func (s *AnalysisService) configFor(req models.AnalysisRequest) ecg.Config {
	cfg := s.defaults
	if req.ThresholdFraction != 0 {
		cfg.ThresholdFraction = req.ThresholdFraction
	}
	if len(req.ActivityBoundaries) > 0 || len(req.ActivityLabels) > 0 {
		cfg.Boundaries = req.ActivityBoundaries
		cfg.Labels = req.ActivityLabels
	}
	return cfg
}

// AnalyzeSamples runs the pipeline over already-loaded samples and stores
// the snapshot under the recording ID.
func (s *AnalysisService) AnalyzeSamples(recordingID string, samples []models.Sample, hasAccel bool, req models.AnalysisRequest) (*ecg.Result, error) {
	pipeline, err := ecg.NewPipeline(s.configFor(req))
	if err != nil {
		return nil, err
	}

	result := pipeline.Run(samples)
	result.Samples.HasAccel = hasAccel

	if result.DroppedBeats > 0 {
		log.Printf("recording %s: dropped %d beats with degenerate RR intervals", recordingID, result.DroppedBeats)
	}
	if result.Beats.Len() == 0 {
		log.Printf("recording %s: no beats detected", recordingID)
	}

	s.mu.Lock()
	s.snapshots[recordingID] = result
	s.mu.Unlock()

	return result, nil
}

// Analyze loads a recording's samples from the store and runs the pipeline
func (s *AnalysisService) Analyze(recordingID string, req models.AnalysisRequest) (*ecg.Result, error) {
	rec, err := s.store.GetRecordingByID(recordingID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	samples, err := s.store.GetSamples(recordingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}

	return s.AnalyzeSamples(recordingID, samples, rec.HasAccel, req)
}

// Result returns the latest snapshot for a recording, running the pipeline
// with defaults when no analysis has happened yet.
func (s *AnalysisService) Result(recordingID string) (*ecg.Result, error) {
	s.mu.RLock()
	result, ok := s.snapshots[recordingID]
	s.mu.RUnlock()
	if ok {
		return result, nil
	}
	return s.Analyze(recordingID, models.AnalysisRequest{})
}

// Forget discards the snapshot of a deleted recording
func (s *AnalysisService) Forget(recordingID string) {
	s.mu.Lock()
	delete(s.snapshots, recordingID)
	s.mu.Unlock()
}

// HRVSummary computes heart-rate-variability statistics for a recording
func (s *AnalysisService) HRVSummary(recordingID string) (*models.HRVSummary, error) {
	result, err := s.Result(recordingID)
	if err != nil || result == nil {
		return nil, err
	}

	rr := result.Beats.RRIntervals()
	rates := result.Beats.Rates()

	return &models.HRVSummary{
		BeatCount:       result.Beats.Len(),
		DroppedBeats:    result.DroppedBeats,
		MeanBPM:         stats.Mean(rates),
		MinBPM:          stats.Min(rates),
		MaxBPM:          stats.Max(rates),
		MeanRRSeconds:   stats.Mean(rr),
		MedianRRSeconds: stats.Median(rr),
		SDNNSeconds:     stats.SDNN(rr),
		RMSSDSeconds:    stats.RMSSD(rr),
		PNN50Percent:    stats.PNN50(rr),
	}, nil
}

// ActivitySummaries groups retained beats by activity label and computes
// per-activity heart-rate statistics. Labels covering several disjoint
// intervals are aggregated together; unlabeled beats are skipped.
func (s *AnalysisService) ActivitySummaries(recordingID string) ([]models.ActivitySummary, error) {
	result, err := s.Result(recordingID)
	if err != nil || result == nil {
		return nil, err
	}

	byLabel := make(map[string][]models.Beat)
	for _, beat := range result.Beats.Beats {
		if beat.ActivityLabel == "" {
			continue
		}
		byLabel[beat.ActivityLabel] = append(byLabel[beat.ActivityLabel], beat)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	summaries := make([]models.ActivitySummary, 0, len(labels))
	for _, label := range labels {
		beats := byLabel[label]
		rates := make([]float64, len(beats))
		rr := make([]float64, len(beats))
		for i, b := range beats {
			rates[i] = b.RateBPM
			rr[i] = b.RRInterval
		}

		summaries = append(summaries, models.ActivitySummary{
			Label:        label,
			BeatCount:    len(beats),
			MeanBPM:      stats.Mean(rates),
			MinBPM:       stats.Min(rates),
			MaxBPM:       stats.Max(rates),
			SDNNSeconds:  stats.SDNN(rr),
			RMSSDSeconds: stats.RMSSD(rr),
		})
	}

	return summaries, nil
}

// zoneDefs are the standard five training zones as fractions of max HR.
var zoneDefs = []struct {
	name     string
	min, max float64
}{
	{"very light", 0.50, 0.60},
	{"light", 0.60, 0.70},
	{"moderate", 0.70, 0.80},
	{"hard", 0.80, 0.90},
	{"maximum", 0.90, 1.01},
}

// ZoneReport computes the age-based heart-rate zone table and the time
// spent in each zone, weighting every beat by its RR interval.
func (s *AnalysisService) ZoneReport(recordingID string, age int) (*models.ZoneReport, error) {
	if age < 1 || age > 120 {
		return nil, fmt.Errorf("age must be between 1 and 120, got %d", age)
	}

	result, err := s.Result(recordingID)
	if err != nil || result == nil {
		return nil, err
	}

	maxHR := float64(220 - age)
	report := &models.ZoneReport{
		Age:       age,
		MaxHRBPM:  maxHR,
		BeatCount: result.Beats.Len(),
	}

	for _, def := range zoneDefs {
		zone := models.HeartRateZone{
			Name:   def.name,
			MinBPM: def.min * maxHR,
			MaxBPM: def.max * maxHR,
		}

		count := 0
		for _, beat := range result.Beats.Beats {
			if beat.RateBPM >= zone.MinBPM && beat.RateBPM < zone.MaxBPM {
				zone.SecondsInZone += beat.RRInterval
				count++
			}
		}
		if report.BeatCount > 0 {
			zone.PercentOfBeats = float64(count) / float64(report.BeatCount) * 100.0
		}

		report.Zones = append(report.Zones, zone)
	}

	return report, nil
}
