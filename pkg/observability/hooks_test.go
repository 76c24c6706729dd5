package observability

import "testing"

type recordingHooks struct {
	rounds    int
	swaps     int
	converged bool
}

func (r *recordingHooks) OnRoundStart(round int)          { r.rounds = round }
func (r *recordingHooks) OnSwap(_, _ int, _, _ any)       { r.swaps++ }
func (r *recordingHooks) OnRoundComplete(_, _ int)        {}
func (r *recordingHooks) OnConverged(_, _ int, conv bool) { r.converged = conv }

func TestSetSortHooks(t *testing.T) {
	defer Reset()

	rec := &recordingHooks{}
	SetSortHooks(rec)

	Sort().OnRoundStart(3)
	Sort().OnSwap(3, 0, 5, 2)
	Sort().OnConverged(3, 1, true)

	if rec.rounds != 3 {
		t.Errorf("rounds = %d, want 3", rec.rounds)
	}
	if rec.swaps != 1 {
		t.Errorf("swaps = %d, want 1", rec.swaps)
	}
	if !rec.converged {
		t.Error("converged = false, want true")
	}
}

func TestSetSortHooksIgnoresNil(t *testing.T) {
	defer Reset()

	SetSortHooks(nil)
	if Sort() == nil {
		t.Fatal("Sort() = nil after SetSortHooks(nil)")
	}
}

func TestReset(t *testing.T) {
	SetSortHooks(&recordingHooks{})
	Reset()

	if _, ok := Sort().(NoopSortHooks); !ok {
		t.Errorf("Sort() = %T after Reset, want NoopSortHooks", Sort())
	}
}
