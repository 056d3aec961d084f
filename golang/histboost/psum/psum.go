// Package psum provides a pool-dispatched parallel reduction over a float
// slice, per spec section 4.8.
package psum

import (
	"gonum.org/v1/gonum/floats"

	"github.com/tarstars/histboost/golang/histboost/pool"
)

// Sum splits data into p.Threads() contiguous segments, reduces each with
// gonum's floats.Sum through the pool, and combines the partial sums
// serially. Routing even a single-threaded reduction through the pool
// keeps every parallel region honoring the same fork-join contract.
func Sum(data []float64, p *pool.Pool) float64 {
	n := p.Threads()
	if n > len(data) {
		n = len(data)
	}
	if n < 1 {
		n = 1
	}

	partial := make([]float64, n)
	chunk := (len(data) + n - 1) / n
	if chunk < 1 {
		chunk = 1
	}

	p.Run(n, func(i int) {
		lo := i * chunk
		hi := lo + chunk
		if lo > len(data) {
			lo = len(data)
		}
		if hi > len(data) {
			hi = len(data)
		}
		if lo < hi {
			partial[i] = floats.Sum(data[lo:hi])
		}
	})

	total := 0.0
	for _, v := range partial {
		total += v
	}
	return total
}
