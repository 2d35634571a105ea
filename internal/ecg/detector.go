package ecg

// DetectPeaks scans the ECG channel and returns the ordered positions of
// local maxima whose amplitude is at least fraction*max(values).
//
// A local maximum is an interior sample that is strictly greater than the
// sample before it and strictly greater than the first differing sample
// after it. A flat plateau is reported once, at its middle sample, not
// once per sample. The first and last samples have only one neighbor and
// are never reported.
//
// The fraction is applied as-is: 0 keeps every local maximum of a
// non-negative signal, 1 keeps only plateaus at the global maximum. Whether
// a fraction is acceptable is the caller's concern; degenerate input
// (empty series, non-positive maximum) simply yields fewer or zero peaks.
func DetectPeaks(values []float64, fraction float64) []int {
	if len(values) < 3 {
		return nil
	}

	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	threshold := fraction * maxVal

	var peaks []int
	i := 1
	for i < len(values)-1 {
		if values[i] <= values[i-1] {
			i++
			continue
		}

		// Rising edge at i; extend over any plateau.
		j := i
		for j+1 < len(values) && values[j+1] == values[i] {
			j++
		}

		// Only a peak if the plateau is followed by a strict drop.
		if j+1 < len(values) && values[j+1] < values[i] {
			if values[i] >= threshold {
				peaks = append(peaks, (i+j)/2)
			}
		}
		i = j + 1
	}

	return peaks
}
