package siggen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestJSONRoundTrip(t *testing.T) {
	g := New(testConfig())
	g.AddSinusoid1(2, 1.5, 0.5, 0)
	g.AddTrend(0.2, 0.01)

	path := filepath.Join(t.TempDir(), "sig.json")
	if err := WriteJSON(path, g.SignalFile()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	sf, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !mat.Equal(sf.Signal, g.Signal()) {
		t.Errorf("signal did not survive the round trip")
	}
	for i, v := range g.T() {
		if sf.T[i] != v {
			t.Fatalf("t[%d]=%f after round trip, expected %f", i, sf.T[i], v)
		}
	}
	for i, v := range g.X() {
		if sf.X[i] != v {
			t.Fatalf("x[%d]=%f after round trip, expected %f", i, sf.X[i], v)
		}
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatalf("ReadJSON on a missing file should have errored but did not")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing-file error does not wrap fs.ErrNotExist: %v", err)
	}
	if !strings.Contains(err.Error(), "--generate") {
		t.Errorf("missing-file error does not point at regeneration: %v", err)
	}
}

func TestReadJSONSqueezesSingletonAxes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want *SignalFile
	}{
		{
			name: "row-wrapped",
			body: `{"signal": [[1, 2], [3, 4], [5, 6]], "t": [[0, 1, 2]], "x": [[0, 1]]}`,
		},
		{
			name: "column-wrapped",
			body: `{"signal": [[1, 2], [3, 4], [5, 6]], "t": [[0], [1], [2]], "x": [[0], [1]]}`,
		},
		{
			name: "flat",
			body: `{"signal": [[1, 2], [3, 4], [5, 6]], "t": [0, 1, 2], "x": [0, 1]}`,
		},
	}

	for _, c := range cases {
		path := filepath.Join(t.TempDir(), c.name+".json")
		if err := os.WriteFile(path, []byte(c.body), 0644); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}

		sf, err := ReadJSON(path)
		if err != nil {
			t.Fatalf("%s: ReadJSON: %v", c.name, err)
		}
		if len(sf.T) != 3 || sf.T[0] != 0 || sf.T[2] != 2 {
			t.Errorf("%s: t=%v, expected [0 1 2]", c.name, sf.T)
		}
		if len(sf.X) != 2 || sf.X[0] != 0 || sf.X[1] != 1 {
			t.Errorf("%s: x=%v, expected [0 1]", c.name, sf.X)
		}
		if v := sf.Signal.At(2, 1); v != 6 {
			t.Errorf("%s: signal[2, 1]=%f, expected 6", c.name, v)
		}
	}
}

func TestReadJSONValidatesShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short time vector", `{"signal": [[1, 2], [3, 4]], "t": [0], "x": [0, 1]}`},
		{"short space vector", `{"signal": [[1, 2], [3, 4]], "t": [0, 1], "x": [0]}`},
		{"ragged signal", `{"signal": [[1, 2], [3]], "t": [0, 1], "x": [0, 1]}`},
		{"empty signal", `{"signal": [], "t": [], "x": []}`},
	}

	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte(c.body), 0644); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if _, err := ReadJSON(path); err == nil {
			t.Errorf("%s: ReadJSON should have errored but did not", c.name)
		}
	}
}
