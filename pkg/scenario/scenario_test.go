package scenario

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

func TestParseValues(t *testing.T) {
	s, err := Parse([]byte(`
values = [3, 1, 12, 9, 8]
stubborn = [0, 4]
max_rounds = 20
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.Is2D() {
		t.Error("Is2D() = true for values scenario")
	}
	if want := []float64{3, 1, 12, 9, 8}; !slices.Equal(s.Values, want) {
		t.Errorf("Values = %v, want %v", s.Values, want)
	}
	if want := []int{0, 4}; !slices.Equal(s.Stubborn, want) {
		t.Errorf("Stubborn = %v, want %v", s.Stubborn, want)
	}
	if s.MaxRounds != 20 {
		t.Errorf("MaxRounds = %d, want 20", s.MaxRounds)
	}
	if s.Size() != 5 {
		t.Errorf("Size() = %d, want 5", s.Size())
	}
}

func TestParsePoints(t *testing.T) {
	s, err := Parse([]byte(`
points = [[5, 2], [1, 4], [3, 1]]
comparator = "sum"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !s.Is2D() {
		t.Error("Is2D() = false for points scenario")
	}
	want := []point.Point{{X: 5, Y: 2}, {X: 1, Y: 4}, {X: 3, Y: 1}}
	if got := s.PointValues(); !slices.Equal(got, want) {
		t.Errorf("PointValues() = %v, want %v", got, want)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{name: "MixedInput", toml: "values = [1]\npoints = [[1, 2]]"},
		{name: "BadPointArity", toml: "points = [[1, 2, 3]]"},
		{name: "ComparatorWithoutPoints", toml: `values = [1]` + "\n" + `comparator = "sum"`},
		{name: "UnknownComparator", toml: "points = [[1, 2]]\ncomparator = \"manhattan\""},
		{name: "NegativeMaxRounds", toml: "values = [1]\nmax_rounds = -1"},
		{name: "StubbornOutOfRange", toml: "values = [1, 2]\nstubborn = [2]"},
		{name: "StubbornNegative", toml: "values = [1, 2]\nstubborn = [-1]"},
		{name: "NotTOML", toml: "values = ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("Parse() = nil error, want validation failure")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	if err := os.WriteFile(path, []byte("values = [2, 1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []float64{2, 1}; !slices.Equal(s.Values, want) {
		t.Errorf("Values = %v, want %v", s.Values, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load() = nil error for missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
