package splitter

import (
	"errors"

	"github.com/tarstars/histboost/golang/histboost/histo"
	"github.com/tarstars/histboost/golang/histboost/pool"
)

// Splitter owns a node's binned feature metadata, the split-search
// configuration, and the lifetime-of-one-tree partition array plus its two
// scratch buffers (spec section 3, "Lifecycles").
type Splitter struct {
	binned    []uint8 // column-major, nFeatures columns of nSamples each
	nSamples  int
	nFeatures int

	nBinsNonMissing     []int
	missingValuesBinIdx uint8
	hasMissingValues    []bool
	isCategorical       []bool

	params Params
	pool   *pool.Pool

	partition []uint32
	leftBuf   []uint32
	rightBuf  []uint32
}

// New validates the per-feature metadata and builds a Splitter whose
// partition array is initialized to 0..nSamples-1, per spec section 3.
// binned is the column-major binned matrix split_indices reads bin codes
// from; it is read-only for the Splitter's lifetime.
func New(binned []uint8, nSamples, nFeatures int, nBinsNonMissing []int, missingValuesBinIdx uint8, hasMissingValues, isCategorical []bool, params Params, threadsNum int) (*Splitter, error) {
	if len(nBinsNonMissing) != nFeatures || len(hasMissingValues) != nFeatures || len(isCategorical) != nFeatures {
		return nil, errors.New("splitter: per-feature metadata slices must have length nFeatures")
	}
	if len(binned) != nSamples*nFeatures {
		return nil, errors.New("splitter: binned matrix must have nSamples*nFeatures entries")
	}
	for _, n := range nBinsNonMissing {
		if n < 1 || n > int(missingValuesBinIdx)+1 {
			return nil, errors.New("splitter: n_bins_non_missing out of range for missing_values_bin_idx")
		}
	}

	partition := make([]uint32, nSamples)
	for i := range partition {
		partition[i] = uint32(i)
	}

	return &Splitter{
		binned:              binned,
		nSamples:            nSamples,
		nFeatures:           nFeatures,
		nBinsNonMissing:     nBinsNonMissing,
		missingValuesBinIdx: missingValuesBinIdx,
		hasMissingValues:    hasMissingValues,
		isCategorical:       isCategorical,
		params:              params,
		pool:                pool.New(pool.NumThreads(threadsNum)),
		partition:           partition,
		leftBuf:             make([]uint32, nSamples),
		rightBuf:            make([]uint32, nSamples),
	}, nil
}

// column returns the bin codes for feature f across every sample.
func (s *Splitter) column(f int) []uint8 {
	return s.binned[f*s.nSamples : (f+1)*s.nSamples]
}

// Column exposes a feature's bin codes for histogram building outside the
// package (the grower accumulates one histogram per feature per node).
func (s *Splitter) Column(f int) []uint8 {
	return s.column(f)
}

// MaxBins returns missing_values_bin_idx+1, the number of bins to allocate
// for any feature's histogram.
func (s *Splitter) MaxBins() int {
	return int(s.missingValuesBinIdx) + 1
}

// NFeatures returns the number of features the Splitter was built with.
func (s *Splitter) NFeatures() int {
	return s.nFeatures
}

// HessiansAreConstant reports the configuration the Splitter was built
// with, for callers that need it to build histograms consistently.
func (s *Splitter) HessiansAreConstant() bool {
	return s.params.HessiansAreConstant
}

// Partition returns the full live partition array; callers represent a node
// as an offset/length slice into it.
func (s *Splitter) Partition() []uint32 {
	return s.partition
}

// FindNodeSplit evaluates every feature's histogram in parallel and returns
// the best admissible split, or the Gain=-1 sentinel if none exists.
// parentValue is the node's own bounded value (spec's "value" input),
// used to derive the parent loss that every candidate split's gain is
// measured against.
func (s *Splitter) FindNodeSplit(nSamples uint32, histograms [][]histo.Entry, sumGradients, sumHessians, parentValue, lowerBound, upperBound float64) (SplitInfo, error) {
	if lowerBound > upperBound {
		return SplitInfo{}, errors.New("splitter: lower_bound must be <= upper_bound")
	}
	if len(histograms) != s.nFeatures {
		return SplitInfo{}, errors.New("splitter: histograms must have one entry per feature")
	}

	parentLoss := lossFromValue(parentValue, sumGradients)
	splitInfos := make([]SplitInfo, s.nFeatures)

	s.pool.Run(s.nFeatures, func(f int) {
		mono := s.params.Monotonic(f)

		var info SplitInfo
		if s.isCategorical[f] {
			info = findCategoricalSplit(histograms[f], s.nBinsNonMissing[f], s.hasMissingValues[f], s.missingValuesBinIdx, nSamples, sumGradients, sumHessians, parentLoss, mono, lowerBound, upperBound, s.params)
		} else {
			info = findNumericSplit(histograms[f], s.nBinsNonMissing[f], s.hasMissingValues[f], s.missingValuesBinIdx, nSamples, sumGradients, sumHessians, parentLoss, mono, lowerBound, upperBound, s.params)
		}
		info.FeatureIdx = f
		info.IsCategorical = s.isCategorical[f]
		splitInfos[f] = info
	})

	best := SplitInfo{Gain: NoSplitGain}
	found := false
	for _, info := range splitInfos {
		if info.Gain == NoSplitGain {
			continue
		}
		if !found || info.Gain > best.Gain {
			best = info
			found = true
		}
	}

	if !found {
		return SplitInfo{Gain: NoSplitGain}, nil
	}
	return best, nil
}
