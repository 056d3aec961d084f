package splitter

import (
	"testing"

	"github.com/tarstars/histboost/golang/histboost/bitset"
)

func newTestSplitter(t *testing.T, binned []uint8, nSamples, nFeatures int) *Splitter {
	t.Helper()
	nBinsNonMissing := make([]int, nFeatures)
	hasMissing := make([]bool, nFeatures)
	isCategorical := make([]bool, nFeatures)
	for f := range nBinsNonMissing {
		nBinsNonMissing[f] = 4
	}
	s, err := New(binned, nSamples, nFeatures, nBinsNonMissing, 255, hasMissing, isCategorical, DefaultParams(), 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSplitIndicesNumericConservesMultiset(t *testing.T) {
	nSamples := 37
	binned := make([]uint8, nSamples)
	for i := range binned {
		binned[i] = uint8(i % 4)
	}
	s := newTestSplitter(t, binned, nSamples, 1)

	info := SplitInfo{FeatureIdx: 0, BinIdx: 1, MissingGoToLeft: false}
	left, right, pos := s.SplitIndices(info, 0, nSamples)

	if len(left)+len(right) != nSamples {
		t.Fatalf("left+right = %d, want %d", len(left)+len(right), nSamples)
	}
	if pos != len(left) {
		t.Fatalf("rightChildPosition = %d, want %d", pos, len(left))
	}

	seen := make(map[uint32]bool, nSamples)
	for _, row := range s.partition[0:nSamples] {
		if seen[row] {
			t.Fatalf("row %d appears twice after partition", row)
		}
		seen[row] = true
	}
	if len(seen) != nSamples {
		t.Fatalf("partition lost samples: got %d distinct, want %d", len(seen), nSamples)
	}
}

func TestSplitIndicesNumericCorrectness(t *testing.T) {
	nSamples := 20
	binned := make([]uint8, nSamples)
	for i := range binned {
		binned[i] = uint8(i % 4)
	}
	s := newTestSplitter(t, binned, nSamples, 1)

	info := SplitInfo{FeatureIdx: 0, BinIdx: 1, MissingGoToLeft: false}
	left, right, _ := s.SplitIndices(info, 0, nSamples)

	for _, row := range left {
		if !(binned[row] <= 1) {
			t.Fatalf("row %d with bin %d landed in left but should be right", row, binned[row])
		}
	}
	for _, row := range right {
		if binned[row] <= 1 {
			t.Fatalf("row %d with bin %d landed in right but should be left", row, binned[row])
		}
	}
}

func TestSplitIndicesMissingGoesLeft(t *testing.T) {
	nSamples := 10
	missingBin := uint8(255)
	binned := make([]uint8, nSamples)
	for i := range binned {
		if i%3 == 0 {
			binned[i] = missingBin
		} else {
			binned[i] = uint8(i % 2)
		}
	}
	s := newTestSplitter(t, binned, nSamples, 1)
	s.missingValuesBinIdx = missingBin

	info := SplitInfo{FeatureIdx: 0, BinIdx: 0, MissingGoToLeft: true}
	left, right, _ := s.SplitIndices(info, 0, nSamples)

	for _, row := range left {
		v := binned[row]
		if !(v == missingBin || v <= 0) {
			t.Fatalf("row %d with bin %d should not be left", row, v)
		}
	}
	for _, row := range right {
		v := binned[row]
		if v == missingBin || v <= 0 {
			t.Fatalf("row %d with bin %d should not be right", row, v)
		}
	}
}

func TestSplitIndicesByBitset(t *testing.T) {
	nSamples := 12
	binned := make([]uint8, nSamples)
	for i := range binned {
		binned[i] = uint8(i % 3) // categories 0,1,2
	}
	s := newTestSplitter(t, binned, nSamples, 1)
	s.isCategorical[0] = true

	var left bitset.Bitset
	left.Set(1) // only category 1 goes left
	info := SplitInfo{FeatureIdx: 0, IsCategorical: true, LeftCatBitset: left}

	leftRows, rightRows, _ := s.SplitIndices(info, 0, nSamples)
	for _, row := range leftRows {
		if binned[row] != 1 {
			t.Fatalf("row %d with category %d landed left, want only category 1", row, binned[row])
		}
	}
	for _, row := range rightRows {
		if binned[row] == 1 {
			t.Fatalf("row %d with category 1 landed right", row)
		}
	}
}

func TestSplitIndicesEmptySideGuard(t *testing.T) {
	nSamples := 8
	binned := make([]uint8, nSamples)
	for i := range binned {
		binned[i] = 0 // every sample bins to 0
	}
	s := newTestSplitter(t, binned, nSamples, 1)

	info := SplitInfo{FeatureIdx: 0, BinIdx: 0, MissingGoToLeft: false}
	left, right, pos := s.SplitIndices(info, 0, nSamples)

	if len(left) != nSamples {
		t.Fatalf("left = %d, want all %d samples", len(left), nSamples)
	}
	if len(right) != 0 {
		t.Fatalf("right = %d, want 0", len(right))
	}
	if pos != nSamples {
		t.Fatalf("rightChildPosition = %d, want %d", pos, nSamples)
	}
}

func TestRegionBoundsDistributesRemainderToFirstRegions(t *testing.T) {
	bounds := regionBounds(10, 3)
	want := []int{0, 4, 7, 10} // 10 = 3*3+1: first region (10 mod 3 = 1) gets the extra element
	for i, b := range bounds {
		if b != want[i] {
			t.Fatalf("bounds = %v, want %v", bounds, want)
		}
	}
}

func TestRegionBoundsEvenSplit(t *testing.T) {
	bounds := regionBounds(12, 4)
	want := []int{0, 3, 6, 9, 12}
	for i, b := range bounds {
		if b != want[i] {
			t.Fatalf("bounds = %v, want %v", bounds, want)
		}
	}
}

func TestSplitIndicesSubregionLeavesOutsideUntouched(t *testing.T) {
	nSamples := 16
	binned := make([]uint8, nSamples)
	for i := range binned {
		binned[i] = uint8(i % 4)
	}
	s := newTestSplitter(t, binned, nSamples, 1)

	sentinelLeft := s.partition[0]
	sentinelRight := s.partition[nSamples-1]

	info := SplitInfo{FeatureIdx: 0, BinIdx: 1, MissingGoToLeft: false}
	s.SplitIndices(info, 4, 12)

	if s.partition[0] != sentinelLeft || s.partition[nSamples-1] != sentinelRight {
		t.Fatalf("partition outside [4,12) was modified")
	}
}
