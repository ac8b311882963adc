// Package dmd holds the contract through which the harness consumes a
// dynamic mode decomposition algorithm, together with the collaborators the
// harness needs around it: an exact DMD implementation, a bagging ensemble
// in the spirit of bagging/optimized DMD, and Hankel time-delay
// preprocessing.
//
// Fit consumes a snapshot matrix in (space, time) orientation with a time
// vector of matching length, and yields continuous-time eigenvalues, mode
// amplitudes and spatial modes.
package dmd

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Decomposer maps a snapshot matrix and time vector to a fitted
// decomposition. data must be oriented (space, time): one column per
// snapshot.
type Decomposer interface {
	Fit(data mat.Matrix, t []float64) (*Result, error)
}

// Result is a fitted decomposition. The model it represents is
//
//	x(t) = Modes * diag(Amplitudes) * exp(Eigs * (t - T0))
type Result struct {
	// Eigs are the continuous-time eigenvalues.
	Eigs []complex128

	// Amplitudes weight each mode at the reference time T0.
	Amplitudes []complex128

	// Modes holds one spatial mode per column, shape (space, rank).
	Modes *mat.CDense

	// T0 is the time the amplitudes are referenced to, normally the
	// first entry of the fitted time vector.
	T0 float64
}

// Rank returns the number of retained modes.
func (r *Result) Rank() int { return len(r.Eigs) }

// Forecast evaluates the fitted model at the given times, returning one
// complex snapshot per column.
func (r *Result) Forecast(t []float64) *mat.CDense {
	n, rank := r.Modes.Dims()
	out := mat.NewCDense(n, len(t), nil)
	for j, tj := range t {
		for k := 0; k < rank; k++ {
			c := r.Amplitudes[k] * cmplx.Exp(r.Eigs[k]*complex(tj-r.T0, 0))
			for i := 0; i < n; i++ {
				out.Set(i, j, out.At(i, j)+r.Modes.At(i, k)*c)
			}
		}
	}
	return out
}

// Reconstruction forecasts at the given times and returns the real part of
// the first n rows. For a delay-embedded fit, n is the original spatial
// dimension, so the stacked copies are discarded.
func (r *Result) Reconstruction(t []float64, n int) *mat.Dense {
	f := r.Forecast(t)
	rows, cols := f.Dims()
	if n > rows {
		n = rows
	}
	out := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, real(f.At(i, j)))
		}
	}
	return out
}

// sortByEigenvalue orders modes by eigenvalue, imaginary part first, so
// results are stable across runs and comparable across ensemble trials.
func (r *Result) sortByEigenvalue() {
	rank := r.Rank()
	idx := make([]int, rank)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ea, eb := r.Eigs[idx[a]], r.Eigs[idx[b]]
		if imag(ea) != imag(eb) {
			return imag(ea) < imag(eb)
		}
		return real(ea) < real(eb)
	})

	eigs := make([]complex128, rank)
	amps := make([]complex128, rank)
	n, _ := r.Modes.Dims()
	modes := mat.NewCDense(n, rank, nil)
	for to, from := range idx {
		eigs[to] = r.Eigs[from]
		amps[to] = r.Amplitudes[from]
		for i := 0; i < n; i++ {
			modes.Set(i, to, r.Modes.At(i, from))
		}
	}
	r.Eigs, r.Amplitudes, r.Modes = eigs, amps, modes
}
