package session

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/exposim/exposim/study"
)

// PhaseSummary aggregates the recorded samples of one phase. Durations are
// seconds, matching the on-disk representation.
type PhaseSummary struct {
	Phase   string
	Count   int
	MeanS   float64
	StdDevS float64
	P90S    float64
}

// Summary computes per-phase statistics for one study kind, ordered by
// phase name. Phases with no samples are skipped.
func (st *State) Summary(kind study.StudyKind) []PhaseSummary {
	byPhase := st.data.Studies[string(kind)]
	phases := make([]string, 0, len(byPhase))
	for p := range byPhase {
		phases = append(phases, p)
	}
	sort.Strings(phases)

	out := make([]PhaseSummary, 0, len(phases))
	for _, p := range phases {
		samples := byPhase[p]
		if len(samples) == 0 {
			continue
		}
		sorted := append([]float64(nil), samples...)
		sort.Float64s(sorted)
		s := PhaseSummary{
			Phase: p,
			Count: len(samples),
			MeanS: stat.Mean(samples, nil),
			P90S:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		}
		// StdDev needs two samples; report 0 rather than NaN below that.
		if len(samples) > 1 {
			s.StdDevS = stat.StdDev(samples, nil)
		}
		out = append(out, s)
	}
	return out
}

// EstimateRemaining projects the wall-clock time for unitsLeft more units
// of this kind from the per-phase means recorded so far. Zero until at
// least one phase has samples.
func (st *State) EstimateRemaining(kind study.StudyKind, unitsLeft int) time.Duration {
	if unitsLeft <= 0 {
		return 0
	}
	var perUnit float64
	for _, s := range st.Summary(kind) {
		perUnit += s.MeanS
	}
	return time.Duration(perUnit * float64(unitsLeft) * float64(time.Second))
}
