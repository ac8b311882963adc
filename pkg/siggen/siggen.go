// Package siggen generates synthetic spatio-temporal test signals with known
// ground-truth structure, used to validate mode decomposition algorithms.
//
// A Generator owns a fixed spatial/temporal grid and an accumulated signal
// matrix of shape (nt, nx). Components are added one at a time; each call
// computes its contribution over the full grid, adds it into the running
// total, and appends a record to the component ledger.
package siggen

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config holds the grid bounds, point counts and noise seed for a Generator.
type Config struct {
	// NX and NT are the number of spatial and temporal grid points.
	NX int
	NT int

	// XMin, XMax bound the spatial coordinate, TMin, TMax the temporal
	// coordinate. Both ranges are inclusive.
	XMin float64
	XMax float64
	TMin float64
	TMax float64

	// Seed seeds the generator's private noise source. When zero, a
	// random seed is drawn at construction, so separate generators
	// produce independent noise.
	Seed uint64
}

// DefaultConfig returns the canonical demo grid: 100 spatial points on
// [0, 10] and 500 temporal points on [0, 50].
func DefaultConfig() Config {
	return Config{NX: 100, NT: 500, XMin: 0, XMax: 10, TMin: 0, TMax: 50}
}

// Generator accumulates waveform components over a fixed grid.
//
// A Generator is not safe for concurrent use; it is owned by a single
// caller.
type Generator struct {
	x []float64 // spatial coordinates, length nx
	t []float64 // temporal coordinates, length nt

	meshX *mat.Dense // x broadcast across time, shape (nt, nx)
	meshT *mat.Dense // t broadcast across space, shape (nt, nx)

	signal *mat.Dense // running total, shape (nt, nx)

	components []Component

	seed uint64
	src  rand.Source
}

// New constructs a Generator for the given grid. The grid is fixed for the
// lifetime of the generator, the signal starts at all zeros and the ledger
// starts empty.
//
// Degenerate configurations (NX < 2, reversed bounds) are not validated
// here; they behave however the underlying spacing primitive behaves.
func New(cfg Config) *Generator {
	x := floats.Span(make([]float64, cfg.NX), cfg.XMin, cfg.XMax)
	t := floats.Span(make([]float64, cfg.NT), cfg.TMin, cfg.TMax)

	meshX := mat.NewDense(cfg.NT, cfg.NX, nil)
	meshT := mat.NewDense(cfg.NT, cfg.NX, nil)
	for i := 0; i < cfg.NT; i++ {
		meshX.SetRow(i, x)
		row := meshT.RawRowView(i)
		for j := range row {
			row[j] = t[i]
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Generator{
		x:      x,
		t:      t,
		meshX:  meshX,
		meshT:  meshT,
		signal: mat.NewDense(cfg.NT, cfg.NX, nil),
		seed:   seed,
		src:    rand.NewPCG(seed, seed),
	}
}

// X returns the spatial coordinate vector (length nx).
func (g *Generator) X() []float64 { return g.x }

// T returns the temporal coordinate vector (length nt).
func (g *Generator) T() []float64 { return g.t }

// MeshX returns the spatial meshgrid matrix of shape (nt, nx).
func (g *Generator) MeshX() *mat.Dense { return g.meshX }

// MeshT returns the temporal meshgrid matrix of shape (nt, nx).
func (g *Generator) MeshT() *mat.Dense { return g.meshT }

// Signal returns the accumulated signal of shape (nt, nx). The returned
// matrix is the generator's own storage and must not be modified.
func (g *Generator) Signal() *mat.Dense { return g.signal }

// Components returns the ordered component ledger.
func (g *Generator) Components() []Component { return g.components }

// Seed returns the seed the generator's noise source was created with.
func (g *Generator) Seed() uint64 { return g.seed }

// add records a component and folds its field into the running signal.
func (g *Generator) add(c Component) {
	g.signal.Add(g.signal, c.Field())
	g.components = append(g.components, c)
}

// AddSinusoid1 adds a traveling, optionally growing or decaying wave of the
// form sin(k*x - omega*t)*exp(gamma*t). Each time row is divided by its own
// spatial L2 norm before scaling, so every time slice of the contribution
// has norm a.
//
// A time row whose raw values are all exactly zero keeps its zeros instead
// of dividing by the zero norm.
func (g *Generator) AddSinusoid1(a, k, omega, gamma float64) {
	nt, nx := g.signal.Dims()
	field := mat.NewDense(nt, nx, nil)
	for i := 0; i < nt; i++ {
		row := field.RawRowView(i)
		grow := math.Exp(gamma * g.t[i])
		for j := 0; j < nx; j++ {
			row[j] = math.Sin(k*g.x[j]-omega*g.t[i]) * grow
		}
		norm := floats.Norm(row, 2)
		if norm == 0 {
			continue
		}
		floats.Scale(a/norm, row)
	}
	g.add(&Sinusoid1{A: a, K: k, Omega: omega, Gamma: gamma, Signal: field})
}

// AddSinusoid2 adds a spatially localized envelope modulated by a temporal
// cosine: a * exp(-k*(x+c)^2)/area * cos(omega*t), where area is the
// trapezoidal integral of the envelope over the spatial domain. The spatial
// integral of each time row's envelope therefore equals a, regardless of k.
func (g *Generator) AddSinusoid2(a, k, omega, c float64) {
	nt, nx := g.signal.Dims()
	env := make([]float64, nx)
	for j := 0; j < nx; j++ {
		d := g.x[j] + c
		env[j] = math.Exp(-k * d * d)
	}
	// The envelope is identical across time rows, so a single row
	// determines the area.
	area := integrate.Trapezoidal(g.x, env)

	field := mat.NewDense(nt, nx, nil)
	for i := 0; i < nt; i++ {
		row := field.RawRowView(i)
		scale := a / area * math.Cos(omega*g.t[i])
		for j := 0; j < nx; j++ {
			row[j] = env[j] * scale
		}
	}
	g.add(&Sinusoid2{A: a, K: k, Omega: omega, C: c, Signal: field})
}

// AddTrend adds a spatially uniform signal linear in time: mu + trend*t.
func (g *Generator) AddTrend(mu, trend float64) {
	nt, nx := g.signal.Dims()
	field := mat.NewDense(nt, nx, nil)
	for i := 0; i < nt; i++ {
		row := field.RawRowView(i)
		v := mu + trend*g.t[i]
		for j := 0; j < nx; j++ {
			row[j] = v
		}
	}
	g.add(&Trend{Mu: mu, Slope: trend, Signal: field})
}

// AddNoise adds i.i.d. Gaussian noise with mean 0 and standard deviation
// noiseStd at every grid point. Draws come from the generator's own seeded
// source, so two generators built with the same Config produce identical
// noise. The draw is recorded in the ledger like any other component.
func (g *Generator) AddNoise(noiseStd float64) {
	nt, nx := g.signal.Dims()
	dist := distuv.Normal{Mu: 0, Sigma: noiseStd, Src: g.src}
	field := mat.NewDense(nt, nx, nil)
	for i := 0; i < nt; i++ {
		row := field.RawRowView(i)
		for j := 0; j < nx; j++ {
			row[j] = dist.Rand()
		}
	}
	g.add(&Noise{Std: noiseStd, Seed: g.seed, Signal: field})
}

// ComponentSum re-sums every recorded per-component matrix. Because noise
// draws are recorded too, the result reproduces Signal exactly.
func (g *Generator) ComponentSum() *mat.Dense {
	nt, nx := g.signal.Dims()
	sum := mat.NewDense(nt, nx, nil)
	for _, c := range g.components {
		sum.Add(sum, c.Field())
	}
	return sum
}
