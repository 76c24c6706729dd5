package report

import (
	"bytes"
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/cellsort/pkg/observability"
	"github.com/matzehuels/cellsort/pkg/tissue"
)

func valueStrings(t *tissue.Tissue[int]) []string {
	out := make([]string, 0, t.Len())
	for _, v := range t.Values() {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func TestRecorderTracesRun(t *testing.T) {
	defer observability.Reset()

	ts := tissue.NewOrdered([]int{3, 2, 1})
	rec := NewRecorder(valueStrings(ts), "")
	rec.Snapshot = func() []string { return valueStrings(ts) }
	observability.SetSortHooks(rec)

	res := ts.Sort(tissue.SortOptions{})
	rep := rec.Report(valueStrings(ts))

	if !slices.Equal(rep.Initial, []string{"3", "2", "1"}) {
		t.Errorf("Initial = %v", rep.Initial)
	}
	if !slices.Equal(rep.Final, []string{"1", "2", "3"}) {
		t.Errorf("Final = %v", rep.Final)
	}
	if rep.Rounds != res.Rounds || rep.Swaps != res.Swaps || !rep.Converged {
		t.Errorf("report totals %+v disagree with result %+v", rep, res)
	}

	if len(rep.Trace) != 3 {
		t.Fatalf("trace has %d rounds, want 3", len(rep.Trace))
	}
	if got := len(rep.Trace[0].Swaps); got != 2 {
		t.Errorf("round 1 swaps = %d, want 2", got)
	}
	if got := rep.Trace[0].Swaps[0]; got.Pos != 0 || got.Left != "3" || got.Right != "2" {
		t.Errorf("first swap = %+v, want pos 0, 3<->2", got)
	}
	if !slices.Equal(rep.Trace[0].Values, []string{"2", "1", "3"}) {
		t.Errorf("round 1 snapshot = %v, want [2 1 3]", rep.Trace[0].Values)
	}
	if len(rep.Trace[2].Swaps) != 0 {
		t.Errorf("converging round recorded %d swaps", len(rep.Trace[2].Swaps))
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	rep := &Report{
		Comparator: "sum",
		Initial:    []string{"(5,2)", "(1,4)"},
		Final:      []string{"(1,4)", "(5,2)"},
		Rounds:     2,
		Swaps:      1,
		Converged:  true,
		Trace: []Round{
			{Round: 1, Swaps: []Swap{{Pos: 0, Left: "(5,2)", Right: "(1,4)"}}},
			{Round: 2},
		},
	}

	var buf bytes.Buffer
	if err := Write(rep, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Comparator != rep.Comparator || got.Rounds != rep.Rounds ||
		got.Swaps != rep.Swaps || got.Converged != rep.Converged {
		t.Errorf("round trip changed totals: %+v", got)
	}
	if len(got.Trace) != 2 || got.Trace[0].Swaps[0] != rep.Trace[0].Swaps[0] {
		t.Errorf("round trip changed trace: %+v", got.Trace)
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(bytes.NewBufferString("{")); err == nil {
		t.Fatal("Read() = nil error for truncated JSON")
	}
}

func TestRecorderSwapOutsideRound(t *testing.T) {
	rec := NewRecorder(nil, "")
	rec.OnSwap(1, 0, 2, 1) // no active round, must not panic
	rec.OnRoundComplete(1, 1)

	if len(rec.Report(nil).Trace) != 0 {
		t.Error("stray events produced trace rounds")
	}
}
