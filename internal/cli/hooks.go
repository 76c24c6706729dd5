package cli

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cellsort/pkg/observability"
)

// multiHooks fans hook events out to several listeners, so a run can
// both log its trace and record a report.
type multiHooks []observability.SortHooks

func (m multiHooks) OnRoundStart(round int) {
	for _, h := range m {
		h.OnRoundStart(round)
	}
}

func (m multiHooks) OnSwap(round, pos int, left, right any) {
	for _, h := range m {
		h.OnSwap(round, pos, left, right)
	}
}

func (m multiHooks) OnRoundComplete(round, swaps int) {
	for _, h := range m {
		h.OnRoundComplete(round, swaps)
	}
}

func (m multiHooks) OnConverged(rounds, swaps int, converged bool) {
	for _, h := range m {
		h.OnConverged(rounds, swaps, converged)
	}
}

// logHooks writes the sort trace to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (l *logHooks) OnRoundStart(round int) {
	l.logger.Debugf("Round %d starting", round)
}

func (l *logHooks) OnSwap(round, pos int, left, right any) {
	l.logger.Infof("Round %d: swap at %d (%v <-> %v)", round, pos, left, right)
}

func (l *logHooks) OnRoundComplete(round, swaps int) {
	l.logger.Infof("Round %d complete: %d swaps", round, swaps)
}

func (l *logHooks) OnConverged(rounds, swaps int, converged bool) {
	if converged {
		l.logger.Infof("Converged after %d rounds, %d swaps", rounds, swaps)
		return
	}
	l.logger.Warnf("Stopped without convergence after %d rounds, %d swaps", rounds, swaps)
}
