package splitter

// eps guards the value denominator against a zero-hessian node with zero
// regularization.
const eps = 1e-15

// value computes the bounded node value -G/(H+lambda), clamped to
// [lo, hi] for monotonic-constraint enforcement.
func value(sumGradients, sumHessians, lo, hi, l2Regularization float64) float64 {
	v := -sumGradients / (sumHessians + l2Regularization + eps)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lossFromValue is G*v, the contribution of a leaf with value v to the
// total loss.
func lossFromValue(v, sumGradients float64) float64 {
	return sumGradients * v
}

// splitGain computes the gain of replacing a leaf of loss parentLoss with
// two children, honoring a monotonic constraint if mono is +1 or -1. It
// returns NoSplitGain if the constraint is violated.
func splitGain(sumGradientLeft, sumHessianLeft, sumGradientRight, sumHessianRight, parentLoss float64, mono int8, lo, hi, l2Regularization float64) (gain, vLeft, vRight float64) {
	vLeft = value(sumGradientLeft, sumHessianLeft, lo, hi, l2Regularization)
	vRight = value(sumGradientRight, sumHessianRight, lo, hi, l2Regularization)

	if mono == 1 && vLeft > vRight {
		return NoSplitGain, vLeft, vRight
	}
	if mono == -1 && vLeft < vRight {
		return NoSplitGain, vLeft, vRight
	}

	gain = parentLoss - lossFromValue(vLeft, sumGradientLeft) - lossFromValue(vRight, sumGradientRight)
	return gain, vLeft, vRight
}
