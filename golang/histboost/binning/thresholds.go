package binning

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FindThresholds is a convenience the splitter never calls: spec section
// 4.2 treats threshold discovery as an external input, but a complete repo
// needs something to produce one for its own end-to-end tests and the
// demo command. Grounded directly on sklearn's _find_binning_thresholds:
// when there are at most maxBins distinct values, the midpoints between
// consecutive distinct values are used; otherwise maxBins-1 evenly spaced
// empirical quantiles of the distinct values are used.
//
// For a categorical column it instead returns the sorted distinct values
// themselves, so MapToBins' categorical post-check (thresholds[k] != value)
// has real category values to compare against.
func FindThresholds(column []float64, maxBins int, categorical bool) []float64 {
	distinct := distinctSorted(column)

	if categorical {
		if len(distinct) > maxBins {
			distinct = distinct[:maxBins]
		}
		return distinct
	}

	if len(distinct) <= maxBins {
		return midpoints(distinct)
	}

	nThresholds := maxBins - 1
	thresholds := make([]float64, nThresholds)
	for i := 0; i < nThresholds; i++ {
		q := float64(i+1) / float64(nThresholds+1)
		thresholds[i] = stat.Quantile(q, stat.Empirical, distinct, nil)
	}
	return thresholds
}

// distinctSorted removes NaNs, sorts ascending, and de-duplicates.
func distinctSorted(column []float64) []float64 {
	vals := make([]float64, 0, len(column))
	for _, v := range column {
		if v == v { // skip NaN
			vals = append(vals, v)
		}
	}
	sort.Float64s(vals)

	out := vals[:0]
	for i, v := range vals {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// midpoints returns the n-1 midpoints between n consecutive sorted values.
func midpoints(sorted []float64) []float64 {
	if len(sorted) < 2 {
		return nil
	}
	out := make([]float64, len(sorted)-1)
	for i := range out {
		out[i] = (sorted[i] + sorted[i+1]) / 2
	}
	return out
}
