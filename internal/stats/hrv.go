package stats

import "math"

// SDNN calculates the standard deviation of RR intervals, the classic
// overall heart-rate-variability measure. Input and output are in seconds.
func SDNN(rr []float64) float64 {
	return StdDev(rr)
}

// RMSSD calculates the root mean square of successive RR differences,
// the short-term variability measure shown on the dashboard.
func RMSSD(rr []float64) float64 {
	if len(rr) < 2 {
		return 0
	}

	var sumSquares float64
	for i := 1; i < len(rr); i++ {
		d := rr[i] - rr[i-1]
		sumSquares += d * d
	}

	return math.Sqrt(sumSquares / float64(len(rr)-1))
}

// PNN50 calculates the percentage of successive RR differences larger
// than 50 milliseconds. Input is in seconds; result is 0-100.
func PNN50(rr []float64) float64 {
	if len(rr) < 2 {
		return 0
	}

	count := 0
	for i := 1; i < len(rr); i++ {
		if math.Abs(rr[i]-rr[i-1]) > 0.050 {
			count++
		}
	}

	return float64(count) / float64(len(rr)-1) * 100.0
}
