package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/scenario"
	"github.com/matzehuels/cellsort/pkg/tissue"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

// compareOpts holds the command-line flags for the compare command.
type compareOpts struct {
	scenario string
}

// compareCommand creates the compare command, which sorts the same
// points once per comparison method and tabulates the outcomes.
func (c *CLI) compareCommand() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare [points...]",
		Short: "Sort the same points with every comparison method",
		Long: `Compare runs the sort once per comparison method (distance, x_first,
y_first, sum) on the same input and shows how the resulting orders
differ.`,
		Example: `  cellsort compare 5,2 1,4 3,1 2,5
  cellsort compare --scenario points.toml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "load points from a TOML scenario file")

	return cmd
}

func (c *CLI) runCompare(args []string, opts *compareOpts) error {
	pts, err := comparePoints(args, opts)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(point.Names()))
	for _, name := range point.Names() {
		cmp, err := point.ByName(name)
		if err != nil {
			return err
		}

		ts := tissue.New(pts, cmp)
		res := ts.Sort(tissue.SortOptions{})
		c.Logger.Debugf("Method %s: %d rounds, %d swaps", name, res.Rounds, res.Swaps)

		rows = append(rows, []string{
			name,
			strings.Join(formatValues(ts.Values()), " "),
			fmt.Sprint(res.Rounds),
			fmt.Sprint(res.Swaps),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Method", "Order", "Rounds", "Swaps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	return nil
}

// comparePoints resolves the compare input to a point slice.
func comparePoints(args []string, opts *compareOpts) ([]point.Point, error) {
	if opts.scenario != "" {
		if len(args) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "positional points and --scenario are mutually exclusive")
		}
		s, err := scenario.Load(opts.scenario)
		if err != nil {
			return nil, err
		}
		if !s.Is2D() {
			return nil, errors.New(errors.ErrCodeInvalidScenario, "compare needs a points scenario")
		}
		return s.PointValues(), nil
	}

	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no input points (pass x,y pairs or --scenario)")
	}
	return parsePoints(args)
}
