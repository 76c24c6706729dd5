package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

// parseValues converts positional arguments to numeric cell values.
func parseValues(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "value %q is not a number", a)
		}
		values[i] = v
	}
	return values, nil
}

// parsePoints converts positional "x,y" arguments to points.
func parsePoints(args []string) ([]point.Point, error) {
	return point.ParseAll(args)
}

// parseIndices parses a comma-separated list of chain positions,
// as used by the --stubborn flag. An empty string yields nil.
func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "index %q is not an integer", p)
		}
		out[i] = n
	}
	return out, nil
}
