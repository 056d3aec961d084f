package splitter

// sampleGoesLeft decides, from a single sample's bin code on the split
// feature, which side of the split it belongs to (spec section 4.7).
func sampleGoesLeft(info SplitInfo, binValue, missingValuesBinIdx uint8) bool {
	if info.IsCategorical {
		return info.LeftCatBitset.Test(binValue)
	}
	if info.MissingGoToLeft && binValue == missingValuesBinIdx {
		return true
	}
	return binValue <= info.BinIdx
}

// regionBounds splits n elements into exactly threads contiguous regions
// per spec section 4.7 step 1: the first n mod threads regions get one
// extra element (floor(n/threads)+1), the rest get the floor size. Returns
// the threads+1 cumulative boundaries, so region r spans
// [bounds[r], bounds[r+1]).
func regionBounds(n, threads int) []int {
	bounds := make([]int, threads+1)
	base := n / threads
	remainder := n % threads
	offset := 0
	for r := 0; r < threads; r++ {
		bounds[r] = offset
		size := base
		if r < remainder {
			size++
		}
		offset += size
	}
	bounds[threads] = n
	return bounds
}

// SplitIndices partitions partition[lo:hi] in place according to info,
// routing every sample to leftBuf/rightBuf by its bin code on
// info.FeatureIdx and writing the result back into the same region of
// s.partition. It returns the left and right sub-slices (both views into
// s.partition) and the absolute offset where the right child begins.
//
// The work runs in two phases across the pool's workers, per spec
// section 4.7: phase A splits [lo,hi) into threads contiguous regions
// (sized by regionBounds) and compacts each into leftBuf/rightBuf at the
// region's own origin offset, recording how many samples on each side it
// produced. A serial prefix sum over those per-thread counts then fixes
// the final write offsets. Phase B copies every thread's compacted
// samples back into s.partition at its assigned offsets, in parallel.
func (s *Splitter) SplitIndices(info SplitInfo, lo, hi int) (left, right []uint32, rightChildPosition int) {
	n := hi - lo
	column := s.column(info.FeatureIdx)
	threads := s.pool.Threads()
	if threads > n {
		threads = n
	}
	if threads < 1 {
		threads = 1
	}

	bounds := regionBounds(n, threads)
	nRegions := threads

	leftCount := make([]int, nRegions)
	rightCount := make([]int, nRegions)

	tasks := make([]func(), nRegions)
	for r := 0; r < nRegions; r++ {
		r := r
		tasks[r] = func() {
			regionLo := lo + bounds[r]
			regionHi := lo + bounds[r+1]

			li, ri := regionLo, regionLo
			for i := regionLo; i < regionHi; i++ {
				row := s.partition[i]
				if sampleGoesLeft(info, column[row], s.missingValuesBinIdx) {
					s.leftBuf[li] = row
					li++
				} else {
					s.rightBuf[ri] = row
					ri++
				}
			}
			leftCount[r] = li - regionLo
			rightCount[r] = ri - regionLo
		}
	}
	s.pool.Submit(tasks)

	leftOffset := make([]int, nRegions)
	rightOffset := make([]int, nRegions)
	totalLeft := 0
	for r := 0; r < nRegions; r++ {
		leftOffset[r] = lo + totalLeft
		totalLeft += leftCount[r]
	}
	totalRight := 0
	for r := 0; r < nRegions; r++ {
		rightOffset[r] = lo + totalLeft + totalRight
		totalRight += rightCount[r]
	}

	copyTasks := make([]func(), nRegions)
	for r := 0; r < nRegions; r++ {
		r := r
		copyTasks[r] = func() {
			regionLo := lo + bounds[r]
			dstLeft := leftOffset[r]
			for i := 0; i < leftCount[r]; i++ {
				s.partition[dstLeft+i] = s.leftBuf[regionLo+i]
			}
			dstRight := rightOffset[r]
			for i := 0; i < rightCount[r]; i++ {
				s.partition[dstRight+i] = s.rightBuf[regionLo+i]
			}
		}
	}
	s.pool.Submit(copyTasks)

	rightChildPosition = lo + totalLeft
	return s.partition[lo:rightChildPosition], s.partition[rightChildPosition:hi], rightChildPosition
}
