// Package histo builds the per-feature, per-bin gradient/hessian/count
// histograms that the splitter reads. Threshold discovery and binning are
// external to this package; it only accumulates statistics over an already
// binned column.
package histo

// Entry is a single (bin) histogram cell: the sum of gradients, the sum of
// hessians, and the sample count that landed in that bin. SumHessians may
// be left at zero by a caller when hessians are constant — see
// HessiansAreConstant in the splitter package, which synthesizes a hessian
// sum from Count at read time in that case.
type Entry struct {
	SumGradients float64
	SumHessians  float64
	Count        uint32
}

// Build accumulates one histogram per bin for a single feature column.
// binned holds one bin code per sample for this feature (length nSamples);
// indices, if non-nil, restricts accumulation to that subset of rows
// (a node's slice of the partition array) instead of every row — pass nil
// to scan the whole column. maxBins is the number of bins to allocate
// (missing_values_bin_idx + 1).
func Build(binned []uint8, indices []uint32, gradients, hessians []float64, hessiansAreConstant bool, maxBins int) []Entry {
	hist := make([]Entry, maxBins)

	accumulate := func(row uint32) {
		b := binned[row]
		hist[b].SumGradients += gradients[row]
		if !hessiansAreConstant {
			hist[b].SumHessians += hessians[row]
		}
		hist[b].Count++
	}

	if indices == nil {
		for row := range binned {
			accumulate(uint32(row))
		}
	} else {
		for _, row := range indices {
			accumulate(row)
		}
	}

	return hist
}

// Sum returns the total (ΣG, ΣH, count) across every bin of hist.
func Sum(hist []Entry, hessiansAreConstant bool) (sumGradients, sumHessians float64, count uint32) {
	for _, e := range hist {
		sumGradients += e.SumGradients
		count += e.Count
		if hessiansAreConstant {
			sumHessians += float64(e.Count)
		} else {
			sumHessians += e.SumHessians
		}
	}
	return
}
