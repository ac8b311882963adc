package siggen

import "gonum.org/v1/gonum/mat"

// Kind tags a ledger entry with the waveform family that produced it.
type Kind string

const (
	KindSinusoid1 Kind = "sinusoid1"
	KindSinusoid2 Kind = "sinusoid2"
	KindTrend     Kind = "trend"
	KindNoise     Kind = "noise"
)

// Component is one entry in a Generator's ledger: the parameters of a
// waveform plus the exact (nt, nx) matrix that was added into the total.
type Component interface {
	Kind() Kind

	// Field returns the per-component contribution matrix.
	Field() *mat.Dense
}

// Sinusoid1 records a traveling wave sin(k*x - omega*t)*exp(gamma*t),
// per-row normalized and scaled by A.
type Sinusoid1 struct {
	A     float64
	K     float64
	Omega float64
	Gamma float64

	Signal *mat.Dense
}

func (c *Sinusoid1) Kind() Kind        { return KindSinusoid1 }
func (c *Sinusoid1) Field() *mat.Dense { return c.Signal }

// Sinusoid2 records a localized envelope A*exp(-k*(x+c)^2)/area modulated
// by cos(omega*t).
type Sinusoid2 struct {
	A     float64
	K     float64
	Omega float64
	C     float64

	Signal *mat.Dense
}

func (c *Sinusoid2) Kind() Kind        { return KindSinusoid2 }
func (c *Sinusoid2) Field() *mat.Dense { return c.Signal }

// Trend records a spatially uniform linear trend mu + trend*t.
type Trend struct {
	Mu    float64
	Slope float64

	Signal *mat.Dense
}

func (c *Trend) Kind() Kind        { return KindTrend }
func (c *Trend) Field() *mat.Dense { return c.Signal }

// Noise records one Gaussian noise draw, including the seed of the source
// that produced it, so the ledger remains a complete audit trail.
type Noise struct {
	Std  float64
	Seed uint64

	Signal *mat.Dense
}

func (c *Noise) Kind() Kind        { return KindNoise }
func (c *Noise) Field() *mat.Dense { return c.Signal }
