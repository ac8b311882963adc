package siggen

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gonum.org/v1/gonum/mat"
)

// SignalFile is the persisted form of a generated signal: the accumulated
// matrix plus its coordinate vectors, under the keys "signal", "t" and "x".
type SignalFile struct {
	Signal *mat.Dense // shape (nt, nx)
	T      []float64  // length nt
	X      []float64  // length nx
}

// SignalFile packages the generator's current output for persistence or for
// handing to a decomposition algorithm.
func (g *Generator) SignalFile() *SignalFile {
	return &SignalFile{Signal: g.signal, T: g.t, X: g.x}
}

// axis is a coordinate vector that unmarshals from either a flat JSON array
// or one wrapped in a singleton extra dimension, which is squeezed away.
type axis []float64

func (a *axis) UnmarshalJSON(b []byte) error {
	var flat []float64
	if err := json.Unmarshal(b, &flat); err == nil {
		*a = flat
		return nil
	}

	var nested [][]float64
	if err := json.Unmarshal(b, &nested); err != nil {
		return fmt.Errorf("coordinate vector is neither 1-D nor 2-D: %w", err)
	}
	if len(nested) == 1 {
		*a = nested[0]
		return nil
	}
	out := make([]float64, len(nested))
	for i, row := range nested {
		if len(row) != 1 {
			return fmt.Errorf("coordinate vector has non-singleton extra dimension (row %d has %d values)", i, len(row))
		}
		out[i] = row[0]
	}
	*a = out
	return nil
}

type signalJSON struct {
	Signal [][]float64 `json:"signal"`
	T      axis        `json:"t"`
	X      axis        `json:"x"`
}

// WriteJSON persists sf to path.
func WriteJSON(path string, sf *SignalFile) error {
	nt, _ := sf.Signal.Dims()
	rows := make([][]float64, nt)
	for i := 0; i < nt; i++ {
		rows[i] = sf.Signal.RawRowView(i)
	}

	b, err := json.Marshal(signalJSON{Signal: rows, T: axis(sf.T), X: axis(sf.X)})
	if err != nil {
		return fmt.Errorf("encode signal file: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write signal file: %w", err)
	}
	return nil
}

// ReadJSON loads a persisted signal from path. Coordinate vectors wrapped in
// a singleton extra dimension are squeezed to 1-D. A missing file is
// reported with guidance to regenerate the data instead of loading it.
func ReadJSON(path string) (*SignalFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("signal file %q: %w; run with --generate to create it", path, err)
		}
		return nil, fmt.Errorf("read signal file: %w", err)
	}

	var raw signalJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode signal file %q: %w", path, err)
	}

	nt := len(raw.Signal)
	if nt == 0 {
		return nil, fmt.Errorf("signal file %q: empty signal matrix", path)
	}
	nx := len(raw.Signal[0])
	if len(raw.T) != nt {
		return nil, fmt.Errorf("signal file %q: %d time values for %d signal rows", path, len(raw.T), nt)
	}
	if len(raw.X) != nx {
		return nil, fmt.Errorf("signal file %q: %d space values for %d signal columns", path, len(raw.X), nx)
	}

	signal := mat.NewDense(nt, nx, nil)
	for i, row := range raw.Signal {
		if len(row) != nx {
			return nil, fmt.Errorf("signal file %q: ragged signal row %d", path, i)
		}
		signal.SetRow(i, row)
	}
	return &SignalFile{Signal: signal, T: raw.T, X: raw.X}, nil
}
