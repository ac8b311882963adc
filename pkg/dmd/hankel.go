package dmd

import "gonum.org/v1/gonum/mat"

// Delay builds the order-d Hankel (time-delay) embedding of a (space, time)
// snapshot matrix: d time-shifted copies of the data stacked vertically,
// giving shape (space*d, time-d+1). An order below 2 returns a copy of the
// input.
func Delay(data mat.Matrix, d int) *mat.Dense {
	if d < 1 {
		d = 1
	}
	n, m := data.Dims()
	cols := m - d + 1
	out := mat.NewDense(n*d, cols, nil)
	for shift := 0; shift < d; shift++ {
		for i := 0; i < n; i++ {
			for j := 0; j < cols; j++ {
				out.Set(shift*n+i, j, data.At(i, j+shift))
			}
		}
	}
	return out
}

// DelayTimes truncates the time vector to match the snapshot count of an
// order-d delay embedding: t[:len(t)-d+1].
func DelayTimes(t []float64, d int) []float64 {
	if d < 1 {
		d = 1
	}
	out := make([]float64, len(t)-d+1)
	copy(out, t)
	return out
}
