package dmd

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// Exact is a plain exact DMD: the snapshot-to-snapshot linear operator is
// projected onto the leading left singular vectors of the data, its
// eigendecomposition gives the modes, and amplitudes come from a
// least-squares fit against the first snapshot. The time vector must be
// uniformly spaced.
type Exact struct {
	// SVDRank truncates the SVD to this many singular values. Zero or
	// negative keeps every singular value above a relative floor.
	SVDRank int
}

func (e Exact) Fit(data mat.Matrix, t []float64) (*Result, error) {
	n, m := data.Dims()
	if m < 2 {
		return nil, fmt.Errorf("dmd: need at least 2 snapshots, got %d", m)
	}
	if len(t) != m {
		return nil, fmt.Errorf("dmd: time vector length %d does not match %d snapshots", len(t), m)
	}
	dt := t[1] - t[0]
	if dt <= 0 {
		return nil, fmt.Errorf("dmd: time vector must be strictly increasing")
	}

	d := mat.DenseCopyOf(data)
	x1 := d.Slice(0, n, 0, m-1).(*mat.Dense)
	x2 := d.Slice(0, n, 1, m).(*mat.Dense)

	var svd mat.SVD
	if ok := svd.Factorize(x1, mat.SVDThin); !ok {
		return nil, fmt.Errorf("dmd: SVD of the snapshot matrix failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Singular values below a relative floor carry no dynamics.
	nonzero := 0
	for _, sv := range s {
		if sv > s[0]*1e-12 {
			nonzero++
		}
	}
	rank := e.SVDRank
	if rank <= 0 || rank > nonzero {
		rank = nonzero
	}
	if rank == 0 {
		return nil, fmt.Errorf("dmd: snapshot matrix is zero")
	}

	ur := u.Slice(0, n, 0, rank)
	vr := v.Slice(0, m-1, 0, rank)

	// p = X2 * Vr * inv(Sr), so atilde = Ur^T * p and the exact modes
	// are p * W.
	var p mat.Dense
	p.Mul(x2, vr)
	for j := 0; j < rank; j++ {
		for i := 0; i < n; i++ {
			p.Set(i, j, p.At(i, j)/s[j])
		}
	}

	var atilde mat.Dense
	atilde.Mul(ur.T(), &p)

	var eig mat.Eigen
	if ok := eig.Factorize(&atilde, mat.EigenRight); !ok {
		return nil, fmt.Errorf("dmd: eigendecomposition of the reduced operator failed")
	}
	lambda := eig.Values(nil)
	var w mat.CDense
	eig.VectorsTo(&w)

	phi := mat.NewCDense(n, rank, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1,
		toCDense(&p).RawCMatrix(), w.RawCMatrix(), 0, phi.RawCMatrix())

	omega := make([]complex128, rank)
	for i, l := range lambda {
		omega[i] = cmplx.Log(l) / complex(dt, 0)
	}

	amps, err := leastSquares(phi, mat.Col(nil, 0, d))
	if err != nil {
		return nil, err
	}

	res := &Result{Eigs: omega, Amplitudes: amps, Modes: phi, T0: t[0]}
	res.sortByEigenvalue()
	return res, nil
}

func toCDense(a *mat.Dense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, complex(a.At(i, j), 0))
		}
	}
	return out
}

// leastSquares solves min |phi*b - rhs| for complex b against a real
// right-hand side, via the real 2n x 2r block embedding of phi.
func leastSquares(phi *mat.CDense, rhs []float64) ([]complex128, error) {
	n, r := phi.Dims()
	a := mat.NewDense(2*n, 2*r, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < r; j++ {
			re := real(phi.At(i, j))
			im := imag(phi.At(i, j))
			a.Set(i, j, re)
			a.Set(i, j+r, -im)
			a.Set(i+n, j, im)
			a.Set(i+n, j+r, re)
		}
	}
	b := mat.NewDense(2*n, 1, nil)
	for i := 0; i < n; i++ {
		b.Set(i, 0, rhs[i])
	}

	var sol mat.Dense
	if err := sol.Solve(a, b); err != nil {
		return nil, fmt.Errorf("dmd: amplitude solve: %w", err)
	}
	out := make([]complex128, r)
	for k := 0; k < r; k++ {
		out[k] = complex(sol.At(k, 0), sol.At(k+r, 0))
	}
	return out, nil
}
