// Package splitter implements the split finder and node partitioner: for
// each feature, it selects the best bin (or, for categorical features, the
// best category subset) to split a node on, and it rewrites a node's slice
// of the sample-index partition array into [left | right].
package splitter

import "github.com/tarstars/histboost/golang/histboost/bitset"

// NoSplitGain is the sentinel gain value meaning "no admissible split was
// found"; the grower converts such a node into a leaf.
const NoSplitGain = -1.0

// SplitInfo is the verdict of the split search for one node.
type SplitInfo struct {
	Gain float64

	FeatureIdx int
	BinIdx     uint8 // unused when IsCategorical

	IsCategorical   bool
	MissingGoToLeft bool
	LeftCatBitset   bitset.Bitset // meaningful only when IsCategorical

	SumGradientLeft, SumGradientRight float64
	SumHessianLeft, SumHessianRight   float64
	NSamplesLeft, NSamplesRight       uint32
	ValueLeft, ValueRight             float64
}

// NoSplit reports whether this SplitInfo is the "no admissible split"
// sentinel.
func (s SplitInfo) NoSplit() bool {
	return s.Gain == NoSplitGain
}

// Params collects the per-node split-search configuration: regularization,
// pruning thresholds, and monotonic constraints. Mirrors the flat
// struct-of-knobs style of the teacher's EBoosterParams.
type Params struct {
	L2Regularization    float64
	MinHessianToSplit   float64 // default 1e-3
	MinSamplesLeaf      uint32  // default 20
	MinGainToSplit      float64 // default 0.0
	HessiansAreConstant bool

	// MonotonicConstraints[f] is -1, 0, or +1 per feature; nil means
	// unconstrained for every feature.
	MonotonicConstraints []int8
}

// DefaultParams returns the documented defaults from spec section 6.
func DefaultParams() Params {
	return Params{
		MinHessianToSplit: 1e-3,
		MinSamplesLeaf:    20,
		MinGainToSplit:    0.0,
	}
}

// Monotonic returns the monotonic constraint configured for featureIdx, or
// 0 (unconstrained) if none was set.
func (p Params) Monotonic(featureIdx int) int8 {
	if p.MonotonicConstraints == nil || featureIdx >= len(p.MonotonicConstraints) {
		return 0
	}
	return p.MonotonicConstraints[featureIdx]
}
