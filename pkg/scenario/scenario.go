// Package scenario loads demo scenarios from TOML files.
//
// A scenario describes one sorting experiment: either plain values or
// 2D points, the comparator to use, optional stubborn cells, and an
// optional round bound. Example:
//
//	values = [3, 1, 12, 9, 8, 100, 6, 111, 2, 10, 7, -4, -100, 5, 4, -1000, 17]
//	stubborn = [5, 11]
//
// or, for the 2D variant:
//
//	points = [[5, 2], [1, 4], [3, 1]]
//	comparator = "sum"
//	max_rounds = 20
package scenario

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

// Scenario is a decoded experiment description.
type Scenario struct {
	// Values holds 1D input; mutually exclusive with Points.
	Values []float64 `toml:"values"`

	// Points holds 2D input as [x, y] pairs.
	Points [][]float64 `toml:"points"`

	// Comparator names the point comparison method. Only meaningful
	// with Points; defaults to "distance".
	Comparator string `toml:"comparator"`

	// MaxRounds caps the number of passes; zero means unbounded.
	MaxRounds int `toml:"max_rounds"`

	// Stubborn lists initial chain positions of cells that refuse to
	// initiate swaps.
	Stubborn []int `toml:"stubborn"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates scenario TOML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode scenario")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Is2D reports whether the scenario sorts points rather than values.
func (s *Scenario) Is2D() bool { return len(s.Points) > 0 }

// PointValues converts the raw [x, y] pairs to points.
// Valid only after Parse/Load succeeded.
func (s *Scenario) PointValues() []point.Point {
	pts := make([]point.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = point.Point{X: p[0], Y: p[1]}
	}
	return pts
}

// Size returns the number of input elements.
func (s *Scenario) Size() int {
	if s.Is2D() {
		return len(s.Points)
	}
	return len(s.Values)
}

func (s *Scenario) validate() error {
	if len(s.Values) > 0 && len(s.Points) > 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "scenario cannot mix values and points")
	}

	for i, p := range s.Points {
		if len(p) != 2 {
			return errors.New(errors.ErrCodeInvalidScenario,
				"points[%d] has %d coordinates, want 2", i, len(p))
		}
	}

	if s.Comparator != "" {
		if !s.Is2D() {
			return errors.New(errors.ErrCodeInvalidScenario,
				"comparator %q requires points input", s.Comparator)
		}
		if _, err := point.ByName(s.Comparator); err != nil {
			return err
		}
	}

	if s.MaxRounds < 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "max_rounds must not be negative")
	}

	for _, i := range s.Stubborn {
		if i < 0 || i >= s.Size() {
			return errors.New(errors.ErrCodeInvalidScenario,
				"stubborn index %d out of range (size %d)", i, s.Size())
		}
	}

	return nil
}
