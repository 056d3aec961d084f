package grower

import (
	"math"
	"testing"

	"github.com/tarstars/histboost/golang/histboost/splitter"
)

// twoGroupFixture builds one numeric feature whose bin code cleanly
// separates two groups of samples with opposite-signed gradients, so a
// correct grower should split exactly once at the boundary.
func twoGroupFixture(nPerGroup int) (binned []uint8, gradients, hessians []float64) {
	n := nPerGroup * 2
	binned = make([]uint8, n)
	gradients = make([]float64, n)
	hessians = make([]float64, n)
	for i := 0; i < n; i++ {
		hessians[i] = 1
		if i < nPerGroup {
			binned[i] = 0
			gradients[i] = -1
		} else {
			binned[i] = 1
			gradients[i] = 1
		}
	}
	return
}

func TestTrainSplitsTwoSeparatedGroups(t *testing.T) {
	binned, gradients, hessians := twoGroupFixture(10)
	n := len(binned)

	params := Params{
		Params:    splitter.DefaultParams(),
		MaxDepth:  4,
		ThreadsNum: 2,
	}
	params.MinSamplesLeaf = 1
	params.MinHessianToSplit = 0

	tree, err := Train(params, binned, n, 1, []int{2}, 255, []bool{false}, []bool{false}, gradients, hessians)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if tree.Root.IsLeaf {
		t.Fatalf("expected root to split, got a leaf with value %v", tree.Root.Value)
	}
	if tree.Root.FeatureIdx != 0 {
		t.Fatalf("FeatureIdx = %d, want 0", tree.Root.FeatureIdx)
	}
	if !tree.Root.Left.IsLeaf || !tree.Root.Right.IsLeaf {
		t.Fatalf("expected both children to be leaves for a clean two-group split")
	}
	if tree.Root.Left.Value <= tree.Root.Right.Value {
		t.Fatalf("left value %v should be greater than right value %v (value is -G/H, so negative gradients give a positive value)", tree.Root.Left.Value, tree.Root.Right.Value)
	}
}

func TestTrainMaxDepthZeroIsUnbounded(t *testing.T) {
	binned, gradients, hessians := twoGroupFixture(10)
	n := len(binned)

	params := Params{
		Params:     splitter.DefaultParams(),
		MaxDepth:   0,
		ThreadsNum: 1,
	}
	params.MinSamplesLeaf = 1

	tree, err := Train(params, binned, n, 1, []int{2}, 255, []bool{false}, []bool{false}, gradients, hessians)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if tree.Root.IsLeaf {
		t.Fatalf("expected MaxDepth=0 (no depth limit) to let the root split")
	}
}

func TestTrainTooFewSamplesIsLeaf(t *testing.T) {
	binned := []uint8{0, 1}
	gradients := []float64{-1, 1}
	hessians := []float64{1, 1}

	params := Params{Params: splitter.DefaultParams(), MaxDepth: 4, ThreadsNum: 1}

	tree, err := Train(params, binned, 2, 1, []int{2}, 255, []bool{false}, []bool{false}, gradients, hessians)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if !tree.Root.IsLeaf {
		t.Fatalf("expected a 2-sample node under default MinSamplesLeaf=20 to stay a leaf")
	}
}

func TestClippedValueMatchesManualFormula(t *testing.T) {
	got := clippedValue(-4, 2, math.Inf(-1), math.Inf(1), 0)
	want := 2.0
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("clippedValue = %v, want %v", got, want)
	}
}

func TestChildBoundsUnconstrainedPassesThrough(t *testing.T) {
	ll, lu, rl, ru := childBounds(-1, 1, splitter.SplitInfo{}, 0)
	if ll != -1 || lu != 1 || rl != -1 || ru != 1 {
		t.Fatalf("unconstrained childBounds should pass bounds through unchanged, got %v %v %v %v", ll, lu, rl, ru)
	}
}

func TestChildBoundsMonotonicIncreasingCapsLeftFloorsRight(t *testing.T) {
	info := splitter.SplitInfo{ValueLeft: -1, ValueRight: 1}
	ll, lu, rl, ru := childBounds(math.Inf(-1), math.Inf(1), info, 1)
	if lu != 0 {
		t.Fatalf("left upper bound = %v, want midpoint 0", lu)
	}
	if rl != 0 {
		t.Fatalf("right lower bound = %v, want midpoint 0", rl)
	}
	if !math.IsInf(ll, -1) || !math.IsInf(ru, 1) {
		t.Fatalf("outer bounds should stay unconstrained, got ll=%v ru=%v", ll, ru)
	}
}
