// Package binning maps a raw feature matrix to a column-major matrix of
// small integer bin codes, following the rule in spec section 4.2: binary
// search per-feature thresholds, with NaN and unseen categories collapsing
// to a single reserved missing-values bin.
package binning

import "github.com/tarstars/histboost/golang/histboost/pool"

// MapToBins bins every value of a row-major (nSamples, nFeatures) matrix
// data into out, a column-major (nSamples, nFeatures) matrix of bin codes:
// out[f*nSamples+row] is the bin code of data[row*nFeatures+f]. thresholds
// holds one ascending array per feature; isCategorical marks which columns
// get the categorical post-check. Columns are independent and are farmed
// out across p's workers, static schedule, one task per feature.
func MapToBins(data []float64, nSamples, nFeatures int, thresholds [][]float64, isCategorical []bool, missingBin uint8, out []uint8, p *pool.Pool) {
	p.Run(nFeatures, func(f int) {
		th := thresholds[f]
		categorical := isCategorical[f]
		colOut := out[f*nSamples : (f+1)*nSamples]
		for row := 0; row < nSamples; row++ {
			colOut[row] = binValue(data[row*nFeatures+f], th, categorical, missingBin)
		}
	})
}

// binValue applies the per-value rule from spec section 4.2 to a single
// feature value.
func binValue(value float64, thresholds []float64, categorical bool, missingBin uint8) uint8 {
	if value != value { // NaN
		return missingBin
	}

	k := searchThresholds(thresholds, value)

	if categorical && (k >= len(thresholds) || thresholds[k] != value) {
		return missingBin
	}

	return uint8(k)
}

// searchThresholds returns the smallest index k such that value <=
// thresholds[k], or len(thresholds) if no such index exists. The midpoint
// left+(right-left-1)/2 biases toward the lower half so that a value equal
// to a threshold collapses the upper half of the search range rather than
// the lower one, matching the <= comparison exactly.
func searchThresholds(thresholds []float64, value float64) int {
	left, right := 0, len(thresholds)
	for left < right {
		mid := left + (right-left-1)/2
		if value <= thresholds[mid] {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}
