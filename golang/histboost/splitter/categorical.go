package splitter

import (
	"sort"

	"github.com/tarstars/histboost/golang/histboost/bitset"
	"github.com/tarstars/histboost/golang/histboost/histo"
)

// minCatSupport is the Fisher (1958) smoothing constant used both to filter
// categories with too little support and to stabilize the ranking ratio's
// denominator. It is fixed at the core layer, not a tunable hyperparameter.
const minCatSupport = 10.0

// catInfo is one category surviving the support filter, carrying the
// ranking key it will be sorted by.
type catInfo struct {
	bin uint8
	key float64
}

// findCategoricalSplit orders categories by Gb/(Hb+minCatSupport), scans
// the sorted list exactly like a numeric split search, and on success
// builds the left_cat_bitset per spec section 4.5.
func findCategoricalSplit(
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
	supportFactor := 0.0
	if sumHessians != 0 {
		supportFactor = float64(nSamples) / sumHessians
	}

	cats := make([]catInfo, 0, nBinsNonMissing+1)
	for b := 0; b < nBinsNonMissing; b++ {
		e := hist[b]
		h := hessianOf(e, params.HessiansAreConstant)
		if h*supportFactor >= minCatSupport {
			cats = append(cats, catInfo{bin: uint8(b), key: e.SumGradients / (h + minCatSupport)})
		}
	}
	if hasMissing {
		e := hist[missingBin]
		h := hessianOf(e, params.HessiansAreConstant)
		if h*supportFactor >= minCatSupport {
			cats = append(cats, catInfo{bin: missingBin, key: e.SumGradients / (h + minCatSupport)})
		}
	}

	if len(cats) < 2 {
		return SplitInfo{Gain: NoSplitGain}
	}

	sort.Slice(cats, func(i, j int) bool { return cats[i].key < cats[j].key })

	var result numericScanResult
	var gl, hl float64
	var nl uint32

	for t := 0; t < len(cats)-1; t++ {
		e := hist[cats[t].bin]
		gl += e.SumGradients
		hl += hessianOf(e, params.HessiansAreConstant)
		nl += e.Count

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
				binIdx:           uint8(t),
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

	if !result.found {
		return SplitInfo{Gain: NoSplitGain}
	}

	var left bitset.Bitset
	for t := 0; t <= int(result.binIdx); t++ {
		left.Set(cats[t].bin)
	}

	return SplitInfo{
		Gain:              result.bestGain,
		IsCategorical:     true,
		BinIdx:            0,
		LeftCatBitset:     left,
		MissingGoToLeft:   hasMissing && left.Test(missingBin),
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
