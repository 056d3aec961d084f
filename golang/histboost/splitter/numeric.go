package splitter

import "github.com/tarstars/histboost/golang/histboost/histo"

// hessianOf returns a bin's hessian sum, synthesizing it from the sample
// count when hessians are constant (spec section 3: "implementations may
// leave that field unused").
func hessianOf(e histo.Entry, hessiansAreConstant bool) float64 {
	if hessiansAreConstant {
		return float64(e.Count)
	}
	return e.SumHessians
}

// numericScanResult is the running state of one directional scan.
type numericScanResult struct {
	found           bool
	bestGain        float64
	binIdx          uint8
	missingGoToLeft bool
	vLeft, vRight   float64
	sumGradientLeft, sumHessianLeft   float64
	sumGradientRight, sumHessianRight float64
	nSamplesLeft, nSamplesRight       uint32
}

// findNumericSplit runs the left-to-right scan (missing -> right), and if
// hasMissing the right-to-left scan too (missing -> left), per spec
// section 4.4, returning the best candidate across both directions.
func findNumericSplit(
	hist []histo.Entry,
	nBinsNonMissing int,
	hasMissing bool,
	missingBin uint8,
	nSamples uint32,
	sumGradients, sumHessians float64,
	parentLoss float64,
	mono int8,
	lo, hi float64,
	params Params,
) SplitInfo {
	result := scanLeftToRight(hist, nBinsNonMissing, hasMissing, nSamples, sumGradients, sumHessians, parentLoss, mono, lo, hi, params)

	if hasMissing {
		result = scanRightToLeft(hist, nBinsNonMissing, nSamples, sumGradients, sumHessians, parentLoss, mono, lo, hi, params, result)
	}

	if !result.found {
		return SplitInfo{Gain: NoSplitGain}
	}

	return SplitInfo{
		Gain:              result.bestGain,
		BinIdx:            result.binIdx,
		MissingGoToLeft:   result.missingGoToLeft,
		SumGradientLeft:   result.sumGradientLeft,
		SumGradientRight:  result.sumGradientRight,
		SumHessianLeft:    result.sumHessianLeft,
		SumHessianRight:   result.sumHessianRight,
		NSamplesLeft:      result.nSamplesLeft,
		NSamplesRight:     result.nSamplesRight,
		ValueLeft:         result.vLeft,
		ValueRight:        result.vRight,
	}
}

func scanLeftToRight(
	hist []histo.Entry,
	nBinsNonMissing int,
	hasMissing bool,
	nSamples uint32,
	sumGradients, sumHessians float64,
	parentLoss float64,
	mono int8,
	lo, hi float64,
	params Params,
) numericScanResult {
	var result numericScanResult

	end := nBinsNonMissing - 1
	if hasMissing {
		end++
	}

	var gl, hl float64
	var nl uint32

	for b := 0; b < end; b++ {
		gl += hist[b].SumGradients
		hl += hessianOf(hist[b], params.HessiansAreConstant)
		nl += hist[b].Count

		gr := sumGradients - gl
		hr := sumHessians - hl
		nr := nSamples - nl

		if nl < params.MinSamplesLeaf || hl < params.MinHessianToSplit {
			continue
		}
		if nr < params.MinSamplesLeaf || hr < params.MinHessianToSplit {
			break
		}

		gain, vl, vr := splitGain(gl, hl, gr, hr, parentLoss, mono, lo, hi, params.L2Regularization)
		if (!result.found || gain > result.bestGain) && gain > params.MinGainToSplit {
			result = numericScanResult{
				found:            true,
				bestGain:         gain,
				binIdx:           uint8(b),
				missingGoToLeft:  false,
				vLeft:            vl,
				vRight:           vr,
				sumGradientLeft:  gl,
				sumGradientRight: gr,
				sumHessianLeft:   hl,
				sumHessianRight:  hr,
				nSamplesLeft:     nl,
				nSamplesRight:    nr,
			}
		}
	}

	return result
}

func scanRightToLeft(
	hist []histo.Entry,
	nBinsNonMissing int,
	nSamples uint32,
	sumGradients, sumHessians float64,
	parentLoss float64,
	mono int8,
	lo, hi float64,
	params Params,
	seed numericScanResult,
) numericScanResult {
	result := seed

	var gr, hr float64
	var nr uint32

	for b := nBinsNonMissing - 2; b >= 0; b-- {
		gr += hist[b+1].SumGradients
		hr += hessianOf(hist[b+1], params.HessiansAreConstant)
		nr += hist[b+1].Count

		gl := sumGradients - gr
		hl := sumHessians - hr
		nl := nSamples - nr

		if nr < params.MinSamplesLeaf || hr < params.MinHessianToSplit {
			continue
		}
		if nl < params.MinSamplesLeaf || hl < params.MinHessianToSplit {
			break
		}

		gain, vl, vr := splitGain(gl, hl, gr, hr, parentLoss, mono, lo, hi, params.L2Regularization)
		if (!result.found || gain > result.bestGain) && gain > params.MinGainToSplit {
			result = numericScanResult{
				found:            true,
				bestGain:         gain,
				binIdx:           uint8(b),
				missingGoToLeft:  true,
				vLeft:            vl,
				vRight:           vr,
				sumGradientLeft:  gl,
				sumGradientRight: gr,
				sumHessianLeft:   hl,
				sumHessianRight:  hr,
				nSamplesLeft:     nl,
				nSamplesRight:    nr,
			}
		}
	}

	return result
}
