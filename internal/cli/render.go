package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/render"
	"github.com/matzehuels/cellsort/pkg/scenario"
	"github.com/matzehuels/cellsort/pkg/tissue"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	points   bool
	by       string
	stubborn string
	scenario string
	output   string
	format   string
	detailed bool
	sorted   bool
}

// renderCommand creates the render command for drawing the cell chain.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{by: point.MethodDistance, format: formatDOT}

	cmd := &cobra.Command{
		Use:   "render [values...]",
		Short: "Draw the cell chain as a Graphviz diagram",
		Long: `Render draws the tissue as a left-to-right chain of boxes. By default
the initial chain is drawn; pass --sorted to sort first. DOT output
goes to stdout unless --output is set.`,
		Example: `  cellsort render 5 2 8 1 9
  cellsort render --sorted --format svg --output chain.svg 5 2 8 1 9
  cellsort render --scenario demo.toml --detailed`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(args, &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.points, "points", "p", false, "treat arguments as x,y points")
	cmd.Flags().StringVar(&opts.by, "by", opts.by, "point comparison method: distance (default), x_first, y_first, sum")
	cmd.Flags().StringVar(&opts.stubborn, "stubborn", "", "comma-separated positions of cells that refuse to swap")
	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "load input from a TOML scenario file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout for dot, tissue.svg for svg)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include cell IDs in node labels")
	cmd.Flags().BoolVar(&opts.sorted, "sorted", false, "sort the tissue before rendering")

	return cmd
}

func (c *CLI) runRender(args []string, opts *renderOpts) error {
	if opts.format != formatDOT && opts.format != formatSVG {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be dot or svg)", opts.format)
	}

	cells, err := c.renderSnapshot(args, opts)
	if err != nil {
		return err
	}

	dot := render.ToDOT(cells, render.Options{Detailed: opts.detailed})

	if opts.format == formatDOT {
		if opts.output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
		}
		printFile(opts.output)
		return nil
	}

	svg, err := render.ToSVG(dot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}

	output := opts.output
	if output == "" {
		output = "tissue.svg"
	}
	if err := os.WriteFile(output, svg, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}
	c.Logger.Debugf("Generated SVG: %d bytes", len(svg))
	printFile(output)
	return nil
}

// renderSnapshot builds the tissue from the command input and flattens
// it for the renderer, optionally sorting first.
func (c *CLI) renderSnapshot(args []string, opts *renderOpts) ([]render.Cell, error) {
	stubborn, err := parseIndices(opts.stubborn)
	if err != nil {
		return nil, err
	}

	if opts.scenario != "" {
		if len(args) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "positional values and --scenario are mutually exclusive")
		}
		s, err := scenario.Load(opts.scenario)
		if err != nil {
			return nil, err
		}
		stubborn = append(stubborn, s.Stubborn...)
		if s.Is2D() {
			method := opts.by
			if s.Comparator != "" {
				method = s.Comparator
			}
			return snapshotPoints(s.PointValues(), method, stubborn, opts.sorted)
		}
		return snapshotValues(s.Values, stubborn, opts.sorted)
	}

	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input values (pass values or --scenario)")
	}

	if opts.points {
		pts, err := parsePoints(args)
		if err != nil {
			return nil, err
		}
		return snapshotPoints(pts, opts.by, stubborn, opts.sorted)
	}

	values, err := parseValues(args)
	if err != nil {
		return nil, err
	}
	return snapshotValues(values, stubborn, opts.sorted)
}

func snapshotValues(values []float64, stubborn []int, sorted bool) ([]render.Cell, error) {
	return snapshot(values, tissue.Natural[float64](), stubborn, sorted)
}

func snapshotPoints(pts []point.Point, method string, stubborn []int, sorted bool) ([]render.Cell, error) {
	cmp, err := point.ByName(method)
	if err != nil {
		return nil, err
	}
	return snapshot(pts, cmp, stubborn, sorted)
}

func snapshot[T any](values []T, cmp tissue.Comparator[T], stubborn []int, sorted bool) ([]render.Cell, error) {
	if err := checkIndices(stubborn, len(values)); err != nil {
		return nil, err
	}
	ts := tissue.New(values, cmp)
	for _, i := range stubborn {
		ts.CellAt(i).SetStubborn(true)
	}
	if sorted {
		ts.Sort(tissue.SortOptions{})
	}
	return render.Snapshot(ts), nil
}
