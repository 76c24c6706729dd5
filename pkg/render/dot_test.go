package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/cellsort/pkg/tissue"
)

func TestSnapshot(t *testing.T) {
	ts := tissue.NewOrdered([]int{5, 2, 8})
	ts.CellAt(1).SetStubborn(true)

	cells := Snapshot(ts)
	if len(cells) != 3 {
		t.Fatalf("len = %d, want 3", len(cells))
	}

	wantLabels := []string{"5", "2", "8"}
	for i, c := range cells {
		if c.Label != wantLabels[i] {
			t.Errorf("cells[%d].Label = %q, want %q", i, c.Label, wantLabels[i])
		}
		if len(c.ID) != 8 {
			t.Errorf("cells[%d].ID = %q, want 8 chars", i, c.ID)
		}
	}
	if cells[0].Stubborn || !cells[1].Stubborn || cells[2].Stubborn {
		t.Errorf("stubborn flags = [%v %v %v], want [false true false]",
			cells[0].Stubborn, cells[1].Stubborn, cells[2].Stubborn)
	}
}

func TestToDOT(t *testing.T) {
	cells := []Cell{
		{ID: "aaaaaaaa", Label: "5"},
		{ID: "bbbbbbbb", Label: "2", Stubborn: true},
		{ID: "cccccccc", Label: "8"},
	}

	dot := ToDOT(cells, Options{})

	for _, want := range []string{
		"digraph tissue {",
		"rankdir=LR;",
		`"aaaaaaaa" [label="5"];`,
		`"bbbbbbbb" [label="2", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"aaaaaaaa" -> "bbbbbbbb";`,
		`"bbbbbbbb" -> "cccccccc";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(dot, `"cccccccc" ->`) {
		t.Error("tail cell must not have an outgoing edge")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT([]Cell{{ID: "aaaaaaaa", Label: "5"}}, Options{Detailed: true})

	if !strings.Contains(dot, `label="5\naaaaaaaa"`) {
		t.Errorf("detailed label missing cell ID:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if !strings.HasPrefix(dot, "digraph tissue {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty chain should still produce a valid digraph:\n%s", dot)
	}
}
