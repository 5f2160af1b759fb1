package lower

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/roster"
)

// Penalty is one soft rule's contribution to the objective: a non-negative integer
// variable bound to the rule's linear expression, the label it is reported under in the
// §6 penalties map (unweighted, §4.5), and the rule's own constraints[*].penalty.weight.
// Binding to a named IntVar (rather than passing the raw LinearExpr to Minimize directly)
// lets C7 extract each rule's realized value by name.
type Penalty struct {
	Label  string
	Var    cpmodel.IntVar
	Weight int
}

// LowerSoft lowers one normalized soft rule, returning its penalty contribution. The
// switch is closed over roster.SoftRule's variant set, mirroring LowerHard. weight is
// the rule's own constraints[*].penalty.weight, carried through to AssembleObjective
// without scaling the bound penalty var itself, which stays the raw violation count.
func LowerSoft(l *lattice.Lattice, scope []string, label string, weight int, rule roster.SoftRule) (Penalty, error) {
	var expr cpmodel.LinearExpr
	var err error
	switch r := rule.(type) {
	case roster.PenalizeWorkOnDays:
		expr, err = exprPenalizeWorkOnDays(l, scope, r)
	case roster.PenalizeWorkOnShifts:
		expr, err = exprPenalizeWorkOnShifts(l, scope, r)
	case roster.PenalizeUnmetDayOffRequests:
		expr, err = exprPenalizeUnmetDayOffRequests(l, r)
	case roster.FairDistribution:
		return lowerFairDistribution(l, scope, label, weight, r)
	default:
		return Penalty{}, fmt.Errorf("未识别的 soft 规则变体: %T", rule)
	}
	if err != nil {
		return Penalty{}, err
	}
	return bindPenaltyVar(l, label, weight, expr, int64(len(l.Employees)*len(l.Days)*len(l.Shifts))), nil
}

// bindPenaltyVar creates a non-negative IntVar in [0, upperBound] constrained equal to
// expr, so C7 can extract the rule's realized penalty by variable name.
func bindPenaltyVar(l *lattice.Lattice, label string, weight int, expr cpmodel.LinearExpr, upperBound int64) Penalty {
	v := l.Builder.NewIntVar(0, upperBound).WithName("penalty_" + label)
	l.Builder.AddEquality(v, expr)
	return Penalty{Label: label, Var: v, Weight: weight}
}

func exprPenalizeWorkOnDays(l *lattice.Lattice, scope []string, r roster.PenalizeWorkOnDays) (cpmodel.LinearExpr, error) {
	expr := cpmodel.NewLinearExpr()
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for _, day := range r.Days {
			di, ok := l.DayIndex(day)
			if !ok {
				continue
			}
			expr.Add(l.BuildWork(ei, di))
		}
	}
	return expr, nil
}

func exprPenalizeWorkOnShifts(l *lattice.Lattice, scope []string, r roster.PenalizeWorkOnShifts) (cpmodel.LinearExpr, error) {
	expr := cpmodel.NewLinearExpr()
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for di := range l.Days {
			for _, s := range r.Shifts {
				si, ok := l.ShiftIndex(s)
				if !ok {
					continue
				}
				expr.Add(l.XAt(ei, di, si))
			}
		}
	}
	return expr, nil
}

func exprPenalizeUnmetDayOffRequests(l *lattice.Lattice, r roster.PenalizeUnmetDayOffRequests) (cpmodel.LinearExpr, error) {
	expr := cpmodel.NewLinearExpr()
	for _, req := range r.Requests {
		ei, ok := l.EmployeeIndex(req.Employee)
		if !ok {
			continue
		}
		di, ok := l.DayIndex(req.Day)
		if !ok {
			continue
		}
		expr.Add(l.BuildWork(ei, di))
	}
	return expr, nil
}

// lowerFairDistribution computes, per window, the in-model floor-mean μ of shift counts
// over the scope and penalizes each employee's absolute deviation via slack pair
// (up_e, dn_e): c_e - μ = up_e - dn_e, penalty = Σ (up_e + dn_e) (§4.5).
func lowerFairDistribution(l *lattice.Lattice, scope []string, label string, weight int, r roster.FairDistribution) (Penalty, error) {
	shiftIdxs := make([]int, 0, len(r.Shifts))
	for _, s := range r.Shifts {
		if si, ok := l.ShiftIndex(s); ok {
			shiftIdxs = append(shiftIdxs, si)
		}
	}
	windows := slidingWindows(len(l.Days), r.WindowDays)
	total := cpmodel.NewLinearExpr()

	for wi, w := range windows {
		counts := make([]cpmodel.LinearExpr, 0, len(scope))
		empIdxs := make([]int, 0, len(scope))
		for _, e := range scope {
			ei, ok := l.EmployeeIndex(e)
			if !ok {
				continue
			}
			empIdxs = append(empIdxs, ei)
			c := cpmodel.NewLinearExpr()
			for di := w[0]; di < w[1]; di++ {
				for _, si := range shiftIdxs {
					c.Add(l.XAt(ei, di, si))
				}
			}
			counts = append(counts, c)
		}
		if len(counts) == 0 {
			continue
		}

		sumC := cpmodel.NewLinearExpr()
		for _, c := range counts {
			sumC.Add(c)
		}

		maxCount := (w[1] - w[0]) * len(shiftIdxs)
		mu := l.Builder.NewIntVar(0, int64(maxCount)).WithName(fmt.Sprintf("%s_mu_w%d", label, wi))
		denom := cpmodel.NewConstant(int64(len(counts)))
		l.Builder.AddDivisionEquality(mu, sumC, denom)

		for i, ei := range empIdxs {
			up := l.Builder.NewIntVar(0, int64(maxCount)).WithName(fmt.Sprintf("%s_up_w%d_e%d", label, wi, ei))
			dn := l.Builder.NewIntVar(0, int64(maxCount)).WithName(fmt.Sprintf("%s_dn_w%d_e%d", label, wi, ei))

			// c_e + dn == mu + up  <=>  c_e - mu == up - dn
			lhs := cpmodel.NewLinearExpr()
			lhs.Add(counts[i])
			lhs.Add(dn)
			rhs := cpmodel.NewLinearExpr()
			rhs.Add(mu)
			rhs.Add(up)
			l.Builder.AddEquality(lhs, rhs)

			total.Add(up)
			total.Add(dn)
		}
	}

	return bindPenaltyVar(l, label, weight, total, int64(len(l.Employees)*len(l.Days)*len(l.Shifts))), nil
}
