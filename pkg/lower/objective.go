package lower

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/rosterc/rosterc/pkg/lattice"
)

// AssembleObjective sums w·penalty over every soft rule, where w is the rule's own
// constraints[*].penalty.weight, then scales the whole sum by the objective's global
// weight (objective.terms[0].weight, normally 1), and installs it as the model's
// minimization objective (§4.5, §4.6). Mode is always minimize.
func AssembleObjective(l *lattice.Lattice, penalties []Penalty, globalWeight int) cpmodel.LinearExpr {
	weighted := cpmodel.NewLinearExpr()
	for _, p := range penalties {
		weighted.AddTerm(p.Var, int64(p.Weight*globalWeight))
	}
	l.Builder.Minimize(weighted)
	return weighted
}
