package solve

import (
	"context"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/lower"
)

// FakeEngine is a deterministic stand-in for CpSatEngine, used by this package's own
// tests and by pkg/orchestrator's end-to-end tests so the suite does not require a
// working cgo or-tools build to run (mirrors the teacher's MockConstraint test doubles).
// Respond is called once per Solve with the lattice and must fill in every boolean key
// the caller expects to read back ("e,d,s" triples) and any integer penalty values.
type FakeEngine struct {
	RawStatus string
	Objective float64
	Bound     float64
	Respond   func(l *lattice.Lattice) (map[string]bool, map[string]int64)
}

// Solve implements Engine by calling Respond, or returning all-zero values if Respond is nil.
func (f FakeEngine) Solve(_ context.Context, l *lattice.Lattice, penalties []lower.Penalty, _ int, _ int) (Response, error) {
	var booleans map[string]bool
	var integers map[string]int64
	if f.Respond != nil {
		booleans, integers = f.Respond(l)
	} else {
		booleans = map[string]bool{}
		integers = map[string]int64{}
	}
	if integers == nil {
		integers = map[string]int64{}
	}
	for _, p := range penalties {
		if _, ok := integers[p.Label]; !ok {
			integers[p.Label] = 0
		}
	}
	return Response{
		RawStatus:          f.RawStatus,
		ObjectiveValue:     f.Objective,
		BestObjectiveBound: f.Bound,
		BooleanValues:      booleans,
		IntegerValues:      integers,
	}, nil
}
