package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/observability"
	"github.com/matzehuels/cellsort/pkg/report"
	"github.com/matzehuels/cellsort/pkg/scenario"
	"github.com/matzehuels/cellsort/pkg/tissue"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	points     bool   // treat arguments as "x,y" points
	by         string // point comparison method
	maxRounds  int    // round cap, 0 means unbounded
	stubborn   string // comma-separated chain positions
	scenario   string // scenario file path
	reportPath string // JSON report output path
	parallel   bool   // use the concurrent variant
	trace      bool   // log every round and swap
}

// runCommand creates the run command for one-shot sorting experiments.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{by: point.MethodDistance}

	cmd := &cobra.Command{
		Use:   "run [values...]",
		Short: "Sort values or points through neighbor swaps",
		Long: `Run builds a cell tissue from the input, lets the cells exchange
places with their neighbors until no cell wants to move, and prints the
result.

Inputs are numbers, or "x,y" points with --points, or a scenario file
with --scenario.`,
		Example: `  cellsort run 5 2 8 1 9
  cellsort run --points --by sum 5,2 1,4 3,1
  cellsort run --stubborn 0,3 7 5 1 9
  cellsort run --scenario demo.toml --report out.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.points, "points", "p", false, "treat arguments as x,y points")
	cmd.Flags().StringVar(&opts.by, "by", opts.by, "point comparison method: distance (default), x_first, y_first, sum")
	cmd.Flags().IntVar(&opts.maxRounds, "max-rounds", 0, "stop after this many rounds (0 = until converged)")
	cmd.Flags().StringVar(&opts.stubborn, "stubborn", "", "comma-separated positions of cells that refuse to swap")
	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "load input from a TOML scenario file")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "write a JSON trace of the run to this file")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "run every cell in its own goroutine")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log each round and swap")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, args []string, opts *runOpts) error {
	stubborn, err := parseIndices(opts.stubborn)
	if err != nil {
		return err
	}

	if opts.scenario != "" {
		if len(args) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "positional values and --scenario are mutually exclusive")
		}
		s, err := scenario.Load(opts.scenario)
		if err != nil {
			return err
		}
		c.Logger.Debugf("Loaded scenario %s (%d elements)", opts.scenario, s.Size())

		if s.MaxRounds > 0 && opts.maxRounds == 0 {
			opts.maxRounds = s.MaxRounds
		}
		stubborn = append(stubborn, s.Stubborn...)

		if s.Is2D() {
			method := opts.by
			if s.Comparator != "" {
				method = s.Comparator
			}
			return c.runPoints(ctx, s.PointValues(), method, stubborn, opts)
		}
		return c.runValues(ctx, s.Values, stubborn, opts)
	}

	if len(args) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no input values (pass values or --scenario)")
	}

	if opts.points {
		pts, err := parsePoints(args)
		if err != nil {
			return err
		}
		return c.runPoints(ctx, pts, opts.by, stubborn, opts)
	}

	values, err := parseValues(args)
	if err != nil {
		return err
	}
	return c.runValues(ctx, values, stubborn, opts)
}

func (c *CLI) runValues(ctx context.Context, values []float64, stubborn []int, opts *runOpts) error {
	return execute(ctx, c, values, tissue.Natural[float64](), "", stubborn, opts)
}

func (c *CLI) runPoints(ctx context.Context, pts []point.Point, method string, stubborn []int, opts *runOpts) error {
	cmp, err := point.ByName(method)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Comparing points by %s", method)
	return execute(ctx, c, pts, cmp, method, stubborn, opts)
}

func execute[T any](ctx context.Context, c *CLI, values []T, cmp tissue.Comparator[T], method string, stubborn []int, opts *runOpts) error {
	if err := checkIndices(stubborn, len(values)); err != nil {
		return err
	}
	if opts.parallel {
		return runParallel(ctx, c, values, cmp, stubborn)
	}
	return runSerial(c, values, cmp, method, stubborn, opts)
}

// runSerial executes the round-based process with hooks attached.
func runSerial[T any](c *CLI, values []T, cmp tissue.Comparator[T], method string, stubborn []int, opts *runOpts) error {
	ts := tissue.New(values, cmp)
	for _, i := range stubborn {
		ts.CellAt(i).SetStubborn(true)
	}

	var hooks multiHooks
	if opts.trace {
		hooks = append(hooks, &logHooks{logger: c.Logger})
	}

	var rec *report.Recorder
	if opts.reportPath != "" {
		rec = report.NewRecorder(formatValues(ts.Values()), method)
		rec.Snapshot = func() []string { return formatValues(ts.Values()) }
		hooks = append(hooks, rec)
	}

	if len(hooks) > 0 {
		observability.SetSortHooks(hooks)
		defer observability.Reset()
	}

	prog := newProgress(c.Logger)
	printInfo("Sorting %d cells", ts.Len())

	res := ts.Sort(tissue.SortOptions{MaxRounds: opts.maxRounds})
	prog.done(fmt.Sprintf("Finished after %d rounds, %d swaps", res.Rounds, res.Swaps))

	if res.Converged {
		printSuccess("Sorted: %v", formatValues(ts.Values()))
	} else {
		printWarning("Stopped before convergence (max rounds reached)")
		printDetail("state: %v", formatValues(ts.Values()))
	}

	if rec != nil {
		if err := report.WriteFile(rec.Report(formatValues(ts.Values())), opts.reportPath); err != nil {
			return err
		}
		printFile(opts.reportPath)
	}
	return nil
}

// runParallel executes the goroutine-per-cell variant.
func runParallel[T any](ctx context.Context, c *CLI, values []T, cmp tissue.Comparator[T], stubborn []int) error {
	p := tissue.NewParallel(values, cmp)
	for _, i := range stubborn {
		p.SetStubborn(i, true)
	}

	prog := newProgress(c.Logger)
	printInfo("Sorting %d cells concurrently", len(values))

	swaps, err := p.Run(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converged after %d swaps", swaps))

	printSuccess("Sorted: %v", formatValues(p.Snapshot()))
	return nil
}

// checkIndices validates stubborn chain positions against the input size.
func checkIndices(indices []int, size int) error {
	for _, i := range indices {
		if i < 0 || i >= size {
			return errors.New(errors.ErrCodeInvalidInput,
				"stubborn index %d out of range (size %d)", i, size)
		}
	}
	return nil
}

// formatValues renders values for display and reports.
func formatValues[T any](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
