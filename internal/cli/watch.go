package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/observability"
	"github.com/matzehuels/cellsort/pkg/scenario"
	"github.com/matzehuels/cellsort/pkg/tissue"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	points   bool
	by       string
	stubborn string
	scenario string
	delay    time.Duration
}

// watchCommand creates the watch command for animating rounds in the terminal.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{by: point.MethodDistance, delay: 500 * time.Millisecond}

	cmd := &cobra.Command{
		Use:   "watch [values...]",
		Short: "Animate the sort round by round",
		Long: `Watch runs one round per tick and redraws the chain, highlighting
the cells that traded places. Press q to stop early.`,
		Example: `  cellsort watch 9 3 7 1 5
  cellsort watch --delay 200ms --stubborn 2 8 6 4 2
  cellsort watch --scenario demo.toml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(args, &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.points, "points", "p", false, "treat arguments as x,y points")
	cmd.Flags().StringVar(&opts.by, "by", opts.by, "point comparison method: distance (default), x_first, y_first, sum")
	cmd.Flags().StringVar(&opts.stubborn, "stubborn", "", "comma-separated positions of cells that refuse to swap")
	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "load input from a TOML scenario file")
	cmd.Flags().DurationVar(&opts.delay, "delay", opts.delay, "pause between rounds")

	return cmd
}

func (c *CLI) runWatch(args []string, opts *watchOpts) error {
	st, err := buildStepper(args, opts)
	if err != nil {
		return err
	}

	capture := &swapCapture{}
	observability.SetSortHooks(capture)
	defer observability.Reset()

	m := watchModel{stepper: st, capture: capture, delay: opts.delay}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "run animation")
	}
	return nil
}

// buildStepper resolves the watch input into a type-erased round driver.
func buildStepper(args []string, opts *watchOpts) (stepper, error) {
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
			return newStepper(s.PointValues(), method, stubborn)
		}
		return newValueStepper(s.Values, stubborn)
	}

	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input values (pass values or --scenario)")
	}

	if opts.points {
		pts, err := parsePoints(args)
		if err != nil {
			return nil, err
		}
		return newStepper(pts, opts.by, stubborn)
	}

	values, err := parseValues(args)
	if err != nil {
		return nil, err
	}
	return newValueStepper(values, stubborn)
}

func newValueStepper(values []float64, stubborn []int) (stepper, error) {
	return buildTissueStepper(values, tissue.Natural[float64](), stubborn)
}

func newStepper(pts []point.Point, method string, stubborn []int) (stepper, error) {
	cmp, err := point.ByName(method)
	if err != nil {
		return nil, err
	}
	return buildTissueStepper(pts, cmp, stubborn)
}

func buildTissueStepper[T any](values []T, cmp tissue.Comparator[T], stubborn []int) (stepper, error) {
	if err := checkIndices(stubborn, len(values)); err != nil {
		return nil, err
	}
	ts := tissue.New(values, cmp)
	for _, i := range stubborn {
		ts.CellAt(i).SetStubborn(true)
	}
	return tissueStepper[T]{ts: ts}, nil
}

// stepper erases the tissue's element type for the animation model.
type stepper interface {
	Step() bool
	Values() []string
	Stubborn() []bool
}

type tissueStepper[T any] struct {
	ts *tissue.Tissue[T]
}

func (s tissueStepper[T]) Step() bool       { return s.ts.Step() }
func (s tissueStepper[T]) Values() []string { return formatValues(s.ts.Values()) }

func (s tissueStepper[T]) Stubborn() []bool {
	out := make([]bool, 0, s.ts.Len())
	for c := s.ts.Head(); c != nil; c = c.Right() {
		out = append(out, c.Stubborn())
	}
	return out
}

// swapCapture records swap positions during a single round.
type swapCapture struct {
	pos []int
}

func (s *swapCapture) OnRoundStart(int)            {}
func (s *swapCapture) OnSwap(_, pos int, _, _ any) { s.pos = append(s.pos, pos) }
func (s *swapCapture) OnRoundComplete(int, int)    {}
func (s *swapCapture) OnConverged(int, int, bool)  {}

func (s *swapCapture) reset() { s.pos = s.pos[:0] }

// =============================================================================
// WatchModel - Round Animation
// =============================================================================

type tickMsg struct{}

// watchModel is the bubbletea model that drives one round per tick.
type watchModel struct {
	stepper stepper
	capture *swapCapture
	delay   time.Duration

	round int
	swaps int
	done  bool
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, tea.Quit
		}
		m.capture.reset()
		progressed := m.stepper.Step()
		m.round++
		m.swaps += len(m.capture.pos)
		if !progressed {
			m.done = true
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Cell Tissue"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	values := m.stepper.Values()
	stubborn := m.stepper.Stubborn()
	swapped := swappedPositions(m.capture.pos)

	cells := make([]string, len(values))
	for i, v := range values {
		label := "[" + v + "]"
		switch {
		case slices.Contains(swapped, i):
			cells[i] = styleSwap.Render(label)
		case stubborn[i]:
			cells[i] = StyleDim.Render(label)
		default:
			cells[i] = StyleValue.Render(label)
		}
	}
	b.WriteString("  " + strings.Join(cells, " "))
	b.WriteString("\n\n")

	status := fmt.Sprintf("round %d · %d swaps", m.round, m.swaps)
	if m.done {
		b.WriteString(StyleSuccess.Render(iconSuccess+" converged") + StyleDim.Render("  "+status))
	} else {
		b.WriteString(StyleDim.Render(status))
	}
	b.WriteString("\n")

	return b.String()
}

// swappedPositions expands swap positions into the affected cell
// indices; a swap at pos moves the cells at pos and pos+1.
func swappedPositions(pos []int) []int {
	out := make([]int, 0, len(pos)*2)
	for _, p := range pos {
		out = append(out, p, p+1)
	}
	return out
}
