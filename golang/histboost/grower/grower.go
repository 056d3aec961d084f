// Package grower builds one tree by repeatedly calling the splitter's
// split search and partition over a node's slice of the sample index
// array, emitting a leaf wherever the search returns no admissible split
// or a stopping condition is reached. It is the outer recursion around
// the core numeric engine (bitset, histo, splitter, pool) — the same role
// ebl/tree.go's BuildTree and poisson_legacy/tree.go's buildTreeHelper
// play around their own split routines.
package grower

import (
	"errors"
	"math"

	"github.com/tarstars/histboost/golang/histboost/bitset"
	"github.com/tarstars/histboost/golang/histboost/splitter"
)

// Node is one node of a grown tree: either an internal node carrying the
// split that produced its children, or a leaf carrying a value.
type Node struct {
	IsLeaf bool
	Value  float64

	FeatureIdx      int
	BinIdx          uint8
	IsCategorical   bool
	MissingGoToLeft bool
	LeftCatBitset   bitset.Bitset

	Left, Right *Node

	Depth    int
	NSamples uint32
}

// Tree is a single grown tree, rooted at Root.
type Tree struct {
	Root *Node
}

// Params collects the stopping conditions and embeds the per-split
// configuration, mirroring the teacher's flat struct-of-knobs style
// (ebl.EBoosterParams).
type Params struct {
	splitter.Params

	MaxDepth  int // 0 means unbounded
	MaxLeaves int // 0 means unbounded

	ThreadsNum int
}

// builder carries the fixed inputs of one Train call through the
// recursion so buildNode's signature stays small.
type builder struct {
	s          *splitter.Splitter
	gradients  []float64
	hessians   []float64
	params     Params
	leafCount  int
}

// Train grows one tree over the given binned columns and per-sample
// gradients/hessians, per spec section 7's find_node_split/split_indices
// contract repeated node by node until every branch bottoms out in a leaf.
func Train(
	params Params,
	binned []uint8,
	nSamples, nFeatures int,
	nBinsNonMissing []int,
	missingValuesBinIdx uint8,
	hasMissingValues, isCategorical []bool,
	gradients, hessians []float64,
) (*Tree, error) {
	if len(gradients) != nSamples || len(hessians) != nSamples {
		return nil, errors.New("grower: gradients/hessians must have nSamples entries")
	}

	s, err := splitter.New(binned, nSamples, nFeatures, nBinsNonMissing, missingValuesBinIdx, hasMissingValues, isCategorical, params.Params, params.ThreadsNum)
	if err != nil {
		return nil, err
	}

	b := &builder{s: s, gradients: gradients, hessians: hessians, params: params}

	root, err := b.buildNode(0, nSamples, 0, math.Inf(-1), math.Inf(1))
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}
