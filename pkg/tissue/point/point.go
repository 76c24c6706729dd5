// Package point provides the 2D variant of cell sorting.
//
// A [Point] carries two coordinates, and the closed set of named
// comparators exposes different "cognitive models" a cell can use to
// judge a neighbor: distance from origin, x-then-y, y-then-x, or
// coordinate sum. The same cells, the same data and a different
// comparator produce different emergent orders - which is the entire
// point of the exercise.
package point

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/tissue"
)

// Named comparison methods. ByName accepts exactly these.
const (
	MethodDistance = "distance" // Euclidean distance from origin
	MethodXFirst   = "x_first"  // x coordinate, ties broken by y
	MethodYFirst   = "y_first"  // y coordinate, ties broken by x
	MethodSum      = "sum"      // x + y
)

// Point is a 2D value carried by a cell.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance from the origin.
func (p Point) Distance() float64 {
	return math.Hypot(p.X, p.Y)
}

// Sum returns the coordinate sum.
func (p Point) Sum() float64 {
	return p.X + p.Y
}

// String formats the point as "(x,y)", trimming trailing zeros.
func (p Point) String() string {
	return fmt.Sprintf("(%s,%s)",
		strconv.FormatFloat(p.X, 'f', -1, 64),
		strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// Parse reads a point from "x,y" form, e.g. "5,2" or "1.5,-3".
func Parse(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q must be in x,y form", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q has invalid x", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %q has invalid y", s)
	}
	return Point{X: x, Y: y}, nil
}

// ParseAll parses a slice of "x,y" strings.
func ParseAll(ss []string) ([]Point, error) {
	points := make([]Point, len(ss))
	for i, s := range ss {
		p, err := Parse(s)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

// Names returns the closed set of comparator names in display order.
func Names() []string {
	return []string{MethodDistance, MethodXFirst, MethodYFirst, MethodSum}
}

// ByName returns the comparator for a named method. Unknown names fail
// with an INVALID_COMPARATOR configuration error.
func ByName(name string) (tissue.Comparator[Point], error) {
	switch name {
	case MethodDistance:
		return compareDistance, nil
	case MethodXFirst:
		return compareXFirst, nil
	case MethodYFirst:
		return compareYFirst, nil
	case MethodSum:
		return compareSum, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidComparator,
			"unknown comparator %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
}

func compareDistance(a, b Point) int {
	return cmp.Compare(a.Distance(), b.Distance())
}

func compareXFirst(a, b Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func compareYFirst(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

func compareSum(a, b Point) int {
	return cmp.Compare(a.Sum(), b.Sum())
}
