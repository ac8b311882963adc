package dmd

import (
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// BOP approximates bagging, optimized DMD: an ensemble of exact fits over
// random contiguous snapshot windows. Contiguous windows keep the sampling
// uniform, which the inner exact fit requires. Eigenvalues and amplitudes
// are averaged across trials after pairing-sorting; modes come from the
// full-data fit.
type BOP struct {
	// SVDRank is passed through to the inner exact fits.
	SVDRank int

	// Trials is the ensemble size. Zero or negative degenerates to a
	// single full-data exact fit.
	Trials int

	// WindowFraction is the fraction of snapshots each trial sees.
	// Values outside (0, 1] default to 0.8.
	WindowFraction float64

	// Src seeds window selection. Nil draws a random seed, making runs
	// independent.
	Src rand.Source

	// OnTrial, when set, is called after each completed trial with the
	// 1-based trial number and the total, for progress reporting.
	OnTrial func(trial, total int)
}

func (b BOP) Fit(data mat.Matrix, t []float64) (*Result, error) {
	full, err := Exact{SVDRank: b.SVDRank}.Fit(data, t)
	if err != nil {
		return nil, err
	}
	if b.Trials <= 0 {
		return full, nil
	}

	n, m := data.Dims()
	frac := b.WindowFraction
	if frac <= 0 || frac > 1 {
		frac = 0.8
	}
	w := int(frac * float64(m))
	if w < 2 {
		w = 2
	}

	src := b.Src
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	rng := rand.New(src)

	rank := full.Rank()
	sumEig := make([]complex128, rank)
	sumAmp := make([]complex128, rank)
	done := 0
	for trial := 0; trial < b.Trials; trial++ {
		start := rng.IntN(m - w + 1)

		sub := mat.NewDense(n, w, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < w; j++ {
				sub.Set(i, j, data.At(i, start+j))
			}
		}
		ts := t[start : start+w]

		res, err := Exact{SVDRank: rank}.Fit(sub, ts)
		if err != nil || res.Rank() != rank {
			// A degenerate window contributes nothing.
			continue
		}
		for k := 0; k < rank; k++ {
			sumEig[k] += res.Eigs[k]
			// Re-reference the window's amplitudes to the global
			// start time before averaging.
			shift := cmplx.Exp(res.Eigs[k] * complex(full.T0-res.T0, 0))
			sumAmp[k] += res.Amplitudes[k] * shift
		}
		done++
		if b.OnTrial != nil {
			b.OnTrial(trial+1, b.Trials)
		}
	}
	if done == 0 {
		return full, nil
	}

	inv := complex(1/float64(done), 0)
	eigs := make([]complex128, rank)
	amps := make([]complex128, rank)
	for k := 0; k < rank; k++ {
		eigs[k] = sumEig[k] * inv
		amps[k] = sumAmp[k] * inv
	}
	return &Result{Eigs: eigs, Amplitudes: amps, Modes: full.Modes, T0: full.T0}, nil
}
