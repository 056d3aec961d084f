package grower

import (
	"github.com/tarstars/histboost/golang/histboost/histo"
	"github.com/tarstars/histboost/golang/histboost/splitter"
)

// buildNode recursively grows the node covering partition[lo:hi], honoring
// MaxDepth and MaxLeaves, and stopping at a leaf whenever find_node_split
// returns the no-split sentinel. lowerBound/upperBound are the monotonic
// value bounds this node's own value must respect, tightened for its
// children per spec section 4.3's clipping rule.
func (b *builder) buildNode(lo, hi int, depth int, lowerBound, upperBound float64) (*Node, error) {
	nSamples := uint32(hi - lo)
	indices := b.s.Partition()[lo:hi]

	sumGradients, sumHessians := b.sumGradHess(indices)

	atMaxDepth := b.params.MaxDepth > 0 && depth >= b.params.MaxDepth
	atMaxLeaves := b.params.MaxLeaves > 0 && b.leafCount+1 >= b.params.MaxLeaves
	tooFewSamples := nSamples < 2*b.params.MinSamplesLeaf

	parentValue := clippedValue(sumGradients, sumHessians, lowerBound, upperBound, b.params.L2Regularization)

	if atMaxDepth || atMaxLeaves || tooFewSamples {
		return b.leaf(parentValue, depth, nSamples), nil
	}

	histograms := b.buildHistograms(indices)

	info, err := b.s.FindNodeSplit(nSamples, histograms, sumGradients, sumHessians, parentValue, lowerBound, upperBound)
	if err != nil {
		return nil, err
	}
	if info.NoSplit() {
		return b.leaf(parentValue, depth, nSamples), nil
	}

	left, right, rightPos := b.s.SplitIndices(info, lo, hi)
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(parentValue, depth, nSamples), nil
	}

	leftLower, leftUpper, rightLower, rightUpper := childBounds(lowerBound, upperBound, info, b.params.Monotonic(info.FeatureIdx))

	leftNode, err := b.buildNode(lo, rightPos, depth+1, leftLower, leftUpper)
	if err != nil {
		return nil, err
	}
	rightNode, err := b.buildNode(rightPos, hi, depth+1, rightLower, rightUpper)
	if err != nil {
		return nil, err
	}

	return &Node{
		IsLeaf:          false,
		FeatureIdx:      info.FeatureIdx,
		BinIdx:          info.BinIdx,
		IsCategorical:   info.IsCategorical,
		MissingGoToLeft: info.MissingGoToLeft,
		LeftCatBitset:   info.LeftCatBitset,
		Left:            leftNode,
		Right:           rightNode,
		Depth:           depth,
		NSamples:        nSamples,
	}, nil
}

// leaf converts a bottomed-out node into a Node carrying its bounded value.
func (b *builder) leaf(value float64, depth int, nSamples uint32) *Node {
	b.leafCount++
	return &Node{IsLeaf: true, Value: value, Depth: depth, NSamples: nSamples}
}

// buildHistograms accumulates one histogram per feature for this node's
// sample subset, per G1.
func (b *builder) buildHistograms(indices []uint32) [][]histo.Entry {
	histograms := make([][]histo.Entry, b.s.NFeatures())
	hessiansConst := b.s.HessiansAreConstant()
	maxBins := b.s.MaxBins()
	for f := 0; f < b.s.NFeatures(); f++ {
		histograms[f] = histo.Build(b.s.Column(f), indices, b.gradients, b.hessians, hessiansConst, maxBins)
	}
	return histograms
}

// sumGradHess totals gradients/hessians over a node's sample subset.
func (b *builder) sumGradHess(indices []uint32) (sumGradients, sumHessians float64) {
	hessiansConst := b.s.HessiansAreConstant()
	for _, row := range indices {
		sumGradients += b.gradients[row]
		if hessiansConst {
			sumHessians++
		} else {
			sumHessians += b.hessians[row]
		}
	}
	return
}

// clippedValue mirrors the splitter's own value() formula; it is duplicated
// here as a package-level helper (splitter.value is unexported) so the
// grower can compute a node's own value before any split search.
func clippedValue(sumGradients, sumHessians, lo, hi, l2Regularization float64) float64 {
	const eps = 1e-15
	v := -sumGradients / (sumHessians + l2Regularization + eps)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// childBounds tightens a node's value bounds for its two children after a
// monotonic-constrained split, following the usual hist-GBDT convention of
// bisecting between the split's own left/right values: for mono=+1 the
// left child is capped above by the midpoint and the right child is
// floored below it (reversed for mono=-1); mono=0 leaves bounds untouched.
func childBounds(lowerBound, upperBound float64, info splitter.SplitInfo, mono int8) (leftLower, leftUpper, rightLower, rightUpper float64) {
	if mono == 0 {
		return lowerBound, upperBound, lowerBound, upperBound
	}
	mid := (info.ValueLeft + info.ValueRight) / 2
	if mono == 1 {
		return lowerBound, mid, mid, upperBound
	}
	return mid, upperBound, lowerBound, mid
}
