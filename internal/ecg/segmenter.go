package ecg

import (
	"sort"

	"github.com/merli/hearttrack-backend-go/internal/models"
)

// Segmenter assigns activity labels to elapsed-time values using a fixed
// table of half-open intervals [boundaries[i], boundaries[i+1]) with one
// label per interval. The same segmenter instance labels both the sample
// series and the beat series, so the two views can never disagree.
type Segmenter struct {
	boundaries []float64
	labels     []string
}

// NewSegmenter validates the boundary/label table and builds a segmenter.
// Boundaries must be strictly increasing and carry exactly one fewer label
// than boundary values; anything else is a configuration error raised
// before any data is touched. Duplicate labels across disjoint intervals
// are allowed.
func NewSegmenter(boundaries []float64, labels []string) (*Segmenter, error) {
	if len(boundaries) < 2 {
		return nil, configErrorf("activityBoundaries", "need at least 2 boundaries, got %d", len(boundaries))
	}
	if len(labels) != len(boundaries)-1 {
		return nil, configErrorf("activityLabels", "got %d labels for %d boundaries, want %d",
			len(labels), len(boundaries), len(boundaries)-1)
	}
	for i := 1; i < len(boundaries); i++ {
		if boundaries[i] <= boundaries[i-1] {
			return nil, configErrorf("activityBoundaries", "not strictly increasing at index %d (%v >= %v)",
				i-1, boundaries[i-1], boundaries[i])
		}
	}

	return &Segmenter{
		boundaries: append([]float64(nil), boundaries...),
		labels:     append([]string(nil), labels...),
	}, nil
}

// Label returns the label of the interval containing t. Boundary matching
// is left-closed/right-open: t exactly at boundaries[i] belongs to interval
// i. A value before the first boundary or at/after the last has no label;
// that is reported via ok=false, never by snapping to the nearest interval.
func (s *Segmenter) Label(t float64) (string, bool) {
	if t < s.boundaries[0] || t >= s.boundaries[len(s.boundaries)-1] {
		return "", false
	}

	// First boundary strictly greater than t; t's interval is the one
	// before it.
	idx := sort.SearchFloat64s(s.boundaries, t)
	if idx < len(s.boundaries) && s.boundaries[idx] == t {
		return s.labels[idx], true
	}
	return s.labels[idx-1], true
}

// Intervals materializes the table as labeled intervals with display colors.
func (s *Segmenter) Intervals() []models.ActivityInterval {
	intervals := make([]models.ActivityInterval, len(s.labels))
	for i, label := range s.labels {
		intervals[i] = models.ActivityInterval{
			Start: s.boundaries[i],
			End:   s.boundaries[i+1],
			Label: label,
			Color: models.ActivityColors[label],
		}
	}
	return intervals
}
