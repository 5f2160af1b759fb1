package lower

import (
	"fmt"
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/roster"
)

// LowerHard lowers one normalized hard rule onto l's model builder. The switch is closed
// over roster.HardRule's variant set (§9 design note) — adding a kind means adding a struct
// in pkg/roster/rules.go, a case in pkg/roster's decodeHardRule, and a case here.
func LowerHard(l *lattice.Lattice, scope []string, rule roster.HardRule) error {
	switch r := rule.(type) {
	case roster.ExactlyOneAssignmentPerDay:
		return lowerExactlyOneAssignmentPerDay(l, scope, r)
	case roster.ForbidShiftSequences:
		return lowerForbidShiftSequences(l, scope, r)
	case roster.MaxShiftsInWindow:
		return lowerMaxShiftsInWindow(l, scope, r)
	case roster.MinRestMinutesBetweenShifts:
		return lowerMinRestMinutesBetweenShifts(l, scope, r)
	case roster.MaxWorkMinutesInWindow:
		return lowerMaxWorkMinutesInWindow(l, scope, r)
	case roster.MaxConsecutiveWorkDays:
		return lowerMaxConsecutiveWorkDays(l, scope, r)
	case roster.MinConsecutiveDaysOff:
		return lowerMinConsecutiveDaysOff(l, scope, r)
	default:
		return fmt.Errorf("未识别的 hard 规则变体: %T", rule)
	}
}

func lowerExactlyOneAssignmentPerDay(l *lattice.Lattice, scope []string, r roster.ExactlyOneAssignmentPerDay) error {
	if !sameSet(r.Shifts, l.Shifts) {
		return fmt.Errorf("exactly_one_assignment_per_day.data.shifts 必须等于 sets.shifts")
	}
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for di := range l.Days {
			vars := make([]cpmodel.BoolVar, 0, len(l.Shifts))
			for si := range l.Shifts {
				vars = append(vars, l.XAt(ei, di, si))
			}
			l.Builder.AddExactlyOne(vars...)
		}
	}
	return nil
}

// LowerDemandCoverage lowers the implicit demand coverage invariant (§4.4) — always
// enforced, never declared in constraints. Eligibility: site_home == site, or no site
// restriction declared for that employee. Skill requirements add a further AddGreaterOrEqual
// over the skill-matching eligible subset.
func LowerDemandCoverage(l *lattice.Lattice, spec *roster.NormalizedSpec) error {
	for _, d := range spec.Demand {
		di, ok := l.DayIndex(d.Day)
		if !ok {
			return fmt.Errorf("demand 引用了未知日期 '%s'", d.Day)
		}
		si, ok := l.ShiftIndex(d.Shift)
		if !ok {
			return fmt.Errorf("demand 引用了未知班次 '%s'", d.Shift)
		}

		eligible := make([]int, 0, len(l.Employees))
		for ei, e := range l.Employees {
			emp := spec.Employees[e]
			if emp.SiteHome == "" || emp.SiteHome == d.Site {
				eligible = append(eligible, ei)
			}
		}

		sum := cpmodel.NewLinearExpr()
		for _, ei := range eligible {
			sum.Add(l.XAt(ei, di, si))
		}

		switch {
		case d.Eq != nil:
			l.Builder.AddEquality(sum, cpmodel.NewConstant(int64(*d.Eq)))
		default:
			if d.Min != nil {
				l.Builder.AddGreaterOrEqual(sum, cpmodel.NewConstant(int64(*d.Min)))
			}
			if d.Max != nil {
				l.Builder.AddLessOrEqual(sum, cpmodel.NewConstant(int64(*d.Max)))
			}
		}

		if d.Requirements != nil {
			for _, sm := range d.Requirements.SkillsMin {
				skillSum := cpmodel.NewLinearExpr()
				for _, ei := range eligible {
					emp := spec.Employees[l.Employees[ei]]
					if emp.HasSkill(sm.Skill) {
						skillSum.Add(l.XAt(ei, di, si))
					}
				}
				l.Builder.AddGreaterOrEqual(skillSum, cpmodel.NewConstant(int64(sm.Min)))
			}
		}
	}
	return nil
}

func lowerForbidShiftSequences(l *lattice.Lattice, scope []string, r roster.ForbidShiftSequences) error {
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for di := 0; di+1 < len(l.Days); di++ {
			for _, pair := range r.Pairs {
				pi, ok1 := l.ShiftIndex(pair.Prev)
				ni, ok2 := l.ShiftIndex(pair.Next)
				if !ok1 || !ok2 {
					continue
				}
				expr := cpmodel.NewLinearExpr()
				expr.Add(l.XAt(ei, di, pi))
				expr.Add(l.XAt(ei, di+1, ni))
				l.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
			}
		}
	}
	return nil
}

func lowerMaxShiftsInWindow(l *lattice.Lattice, scope []string, r roster.MaxShiftsInWindow) error {
	shiftIdxs := make([]int, 0, len(r.Shifts))
	for _, s := range r.Shifts {
		if si, ok := l.ShiftIndex(s); ok {
			shiftIdxs = append(shiftIdxs, si)
		}
	}
	windows := slidingWindows(len(l.Days), r.WindowDays)
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for _, w := range windows {
			expr := cpmodel.NewLinearExpr()
			for di := w[0]; di < w[1]; di++ {
				for _, si := range shiftIdxs {
					expr.Add(l.XAt(ei, di, si))
				}
			}
			l.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(r.Max)))
		}
	}
	return nil
}

func lowerMinRestMinutesBetweenShifts(l *lattice.Lattice, scope []string, r roster.MinRestMinutesBetweenShifts) error {
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for di := 0; di+1 < len(l.Days); di++ {
			for _, ps := range l.WorkShifts {
				for _, ns := range l.WorkShifts {
					pd := l.ShiftDefs[ps]
					nd := l.ShiftDefs[ns]
					gap := restGapMinutes(pd.Start, pd.End, nd.Start, nd.End)
					if gap >= r.Minutes {
						continue
					}
					pi, _ := l.ShiftIndex(ps)
					ni, _ := l.ShiftIndex(ns)
					expr := cpmodel.NewLinearExpr()
					expr.Add(l.XAt(ei, di, pi))
					expr.Add(l.XAt(ei, di+1, ni))
					l.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(1))
				}
			}
		}
	}
	return nil
}

func lowerMaxWorkMinutesInWindow(l *lattice.Lattice, scope []string, r roster.MaxWorkMinutesInWindow) error {
	windows := slidingWindows(len(l.Days), r.WindowDays)
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for _, w := range windows {
			expr := cpmodel.NewLinearExpr()
			for di := w[0]; di < w[1]; di++ {
				expr.Add(l.BuildMinutes(ei, di))
			}
			l.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(r.Max)))
		}
	}
	return nil
}

func lowerMaxConsecutiveWorkDays(l *lattice.Lattice, scope []string, r roster.MaxConsecutiveWorkDays) error {
	span := r.Max + 1
	windows := slidingWindows(len(l.Days), span)
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for _, w := range windows {
			if w[1]-w[0] < span {
				continue // a truncated tail shorter than K+1 can never violate "at most K of K+1"
			}
			expr := cpmodel.NewLinearExpr()
			for di := w[0]; di < w[1]; di++ {
				expr.Add(l.BuildWork(ei, di))
			}
			l.Builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(r.Max)))
		}
	}
	return nil
}

// lowerMinConsecutiveDaysOff forbids, for every start day d and every run length
// ℓ∈[1,K-1], the pattern "work at d-1, off for exactly ℓ days, work at d+ℓ" (§4.4):
// no off-run shorter than K is permitted between two work days.
func lowerMinConsecutiveDaysOff(l *lattice.Lattice, scope []string, r roster.MinConsecutiveDaysOff) error {
	if r.Min <= 1 {
		return nil // no run length is too short to forbid
	}
	for _, e := range scope {
		ei, ok := l.EmployeeIndex(e)
		if !ok {
			continue
		}
		for d := 1; d < len(l.Days); d++ {
			for run := 1; run < r.Min; run++ {
				end := d + run // index of the work[d+run] bookend
				if end >= len(l.Days) {
					break
				}
				// forbid work[d-1]=1 ∧ work[d..end-1] all 0 ∧ work[end]=1: if the middle
				// run is entirely off, Σ_{k=d}^{end-1} work[k] = 0 and the bookends can't
				// both be 1; any worked middle day slackens the inequality.
				bookends := cpmodel.NewLinearExpr()
				bookends.Add(l.BuildWork(ei, d-1))
				bookends.Add(l.BuildWork(ei, end))
				middle := cpmodel.NewLinearExpr()
				for k := d; k < end; k++ {
					middle.Add(l.BuildWork(ei, k))
				}
				l.Builder.AddLessOrEqual(subtractExpr(bookends, middle), cpmodel.NewConstant(1))
			}
		}
	}
	return nil
}

// subtractExpr builds lhs - rhs as a single LinearExpr by re-adding rhs's terms negated.
// cpmodel's LinearExpr accumulates via Add/AddTerm only, so subtraction is expressed by
// negative-coefficient terms over the same BoolVar set rather than a builder-level op.
func subtractExpr(lhs, rhs cpmodel.LinearExpr) cpmodel.LinearExpr {
	// rhs here is always a sum of work[e,k] linear expressions (themselves sums of BoolVars
	// with coefficient 1); NewLinearExpr + AddTerm with negative coefficients reconstructs
	// lhs - rhs because LinearExpr composition is associative over addition.
	out := cpmodel.NewLinearExpr()
	out.Add(lhs)
	out.AddTerm(rhs, -1)
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string(nil), a...)
	sb := append([]string(nil), b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
