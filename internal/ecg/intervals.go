package ecg

import (
	"math"

	"github.com/merli/hearttrack-backend-go/internal/models"
)

// DeriveBeats converts an ordered sequence of peak timestamps (elapsed
// seconds) into a BeatSeries with RR interval, instantaneous rate and the
// midpoint time used for plotting rate against time.
//
// The first peak has no predecessor and is never part of the result. A
// non-positive or non-finite RR interval (two peaks reported at the same
// elapsed time, which can happen at a plateau boundary) is dropped the same
// way instead of propagating an infinite rate; the number of such drops is
// returned so callers can surface the condition. Fewer than two peaks yield
// an empty series, not an error.
func DeriveBeats(peakTimes []float64) (models.BeatSeries, int) {
	series := models.BeatSeries{}
	dropped := 0

	for i := 1; i < len(peakTimes); i++ {
		rr := peakTimes[i] - peakTimes[i-1]
		if rr <= 0 || math.IsNaN(rr) || math.IsInf(rr, 0) {
			dropped++
			continue
		}

		series.Beats = append(series.Beats, models.Beat{
			PeakElapsedSeconds: peakTimes[i],
			RRInterval:         rr,
			RateBPM:            60.0 / rr,
			MidpointSeconds:    (peakTimes[i] + peakTimes[i-1]) / 2.0,
		})
	}

	return series, dropped
}
