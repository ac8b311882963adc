package sigplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func testSignal() (*mat.Dense, []float64, []float64) {
	x := floats.Span(make([]float64, 8), -5, 5)
	t := floats.Span(make([]float64, 12), 0, 11)
	signal := mat.NewDense(len(t), len(x), nil)
	for i := range t {
		for j := range x {
			signal.Set(i, j, math.Sin(x[j]-0.5*t[i]))
		}
	}
	return signal, x, t
}

func wrotePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected plot file at %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("plot file %s is empty", path)
	}
}

func TestHeatmap(t *testing.T) {
	signal, x, tv := testSignal()
	path := filepath.Join(t.TempDir(), "signal.png")

	if err := Heatmap(path, "signal", signal, x, tv); err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	wrotePNG(t, path)
}

func TestHeatmapShapeMismatch(t *testing.T) {
	signal, x, tv := testSignal()

	if err := Heatmap(filepath.Join(t.TempDir(), "bad.png"), "signal", signal, x[:3], tv); err == nil {
		t.Errorf("Heatmap with mismatched x should have errored but did not")
	}
	if err := Heatmap(filepath.Join(t.TempDir(), "bad.png"), "signal", signal, x, tv[:3]); err == nil {
		t.Errorf("Heatmap with mismatched t should have errored but did not")
	}
}

func TestEigenvalues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eigs.png")
	eigs := []complex128{complex(0, -2.5), complex(0, 2.5), complex(-0.1, 0)}

	if err := Eigenvalues(path, eigs); err != nil {
		t.Fatalf("Eigenvalues: %v", err)
	}
	wrotePNG(t, path)
}

func TestModes(t *testing.T) {
	_, x, _ := testSignal()
	modes := mat.NewCDense(len(x), 2, nil)
	for i := range x {
		modes.Set(i, 0, complex(math.Sin(x[i]), 0))
		modes.Set(i, 1, complex(math.Cos(x[i]), 0))
	}

	path := filepath.Join(t.TempDir(), "modes.png")
	if err := Modes(path, modes, x, []int{0, 1}); err != nil {
		t.Fatalf("Modes: %v", err)
	}
	wrotePNG(t, path)

	if err := Modes(filepath.Join(t.TempDir(), "bad.png"), modes, x, []int{5}); err == nil {
		t.Errorf("Modes with an out-of-range index should have errored but did not")
	}
}
