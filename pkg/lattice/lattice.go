// Package lattice builds the Boolean assignment lattice X[e,d,s] and its lazily-derived
// work/minutes expressions over a google/or-tools CP-SAT model builder.
package lattice

import (
	"fmt"
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	apperrors "github.com/rosterc/rosterc/pkg/errors"
	"github.com/rosterc/rosterc/pkg/roster"
)

type xkey struct {
	e, d, s int
}

type edkey struct {
	e, d int
}

// Lattice owns one CP model builder for the duration of a single solve (§9: no global
// mutable state — the builder is a value threaded explicitly, never a package var).
type Lattice struct {
	Builder *cpmodel.CpModelBuilder

	Employees []string
	Days      []string
	Shifts    []string // sets.shifts, spec order, includes OFF
	WorkShifts []string

	empIndex   map[string]int
	dayIndex   map[string]int
	shiftIndex map[string]int

	ShiftDefs map[string]roster.ShiftDef

	x map[xkey]cpmodel.BoolVar

	work    map[edkey]cpmodel.LinearExpr
	minutes map[edkey]cpmodel.LinearExpr
}

// Build allocates X[e,d,s] for the full cross-product. Rejects the spec if the lattice
// would exceed maxCells (§4.3 capacity ceiling) before allocating a single variable.
func Build(spec *roster.NormalizedSpec, maxCells int) (*Lattice, error) {
	employees := append([]string(nil), spec.Sets.Employees...)
	days := append([]string(nil), spec.Sets.Days...)
	shifts := append([]string(nil), spec.Sets.Shifts...)

	cells := len(employees) * len(days) * len(shifts)
	if cells > maxCells {
		return nil, apperrors.CapacityViolation(
			fmt.Sprintf("分派格点规模 %d 超过上限 %d (employees=%d days=%d shifts=%d)",
				cells, maxCells, len(employees), len(days), len(shifts)))
	}

	l := &Lattice{
		Builder:    cpmodel.NewCpModelBuilder(),
		Employees:  employees,
		Days:       days,
		Shifts:     shifts,
		WorkShifts: append([]string(nil), spec.WorkShifts...),
		ShiftDefs:  spec.Shifts,
		empIndex:   indexOf(employees),
		dayIndex:   indexOf(days),
		shiftIndex: indexOf(shifts),
		x:          make(map[xkey]cpmodel.BoolVar, cells),
		work:       make(map[edkey]cpmodel.LinearExpr),
		minutes:    make(map[edkey]cpmodel.LinearExpr),
	}

	for ei, e := range employees {
		for di, d := range days {
			for si, s := range shifts {
				name := fmt.Sprintf("x_e%d_d%d_s%d", ei, di, si)
				l.x[xkey{ei, di, si}] = l.Builder.NewBoolVar().WithName(name)
				_ = e
				_ = d
				_ = s
			}
		}
	}

	return l, nil
}

func indexOf(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// EmployeeIndex, DayIndex, ShiftIndex expose the canonical axis positions so lowerers can
// translate spec-level ids into lattice coordinates.
func (l *Lattice) EmployeeIndex(id string) (int, bool) { i, ok := l.empIndex[id]; return i, ok }
func (l *Lattice) DayIndex(id string) (int, bool)      { i, ok := l.dayIndex[id]; return i, ok }
func (l *Lattice) ShiftIndex(id string) (int, bool)    { i, ok := l.shiftIndex[id]; return i, ok }

// X returns the decision variable for (employee, day, shift) by id.
func (l *Lattice) X(e, d, s string) (cpmodel.BoolVar, bool) {
	ei, ok := l.empIndex[e]
	if !ok {
		return cpmodel.BoolVar{}, false
	}
	di, ok := l.dayIndex[d]
	if !ok {
		return cpmodel.BoolVar{}, false
	}
	si, ok := l.shiftIndex[s]
	if !ok {
		return cpmodel.BoolVar{}, false
	}
	return l.x[xkey{ei, di, si}], true
}

// XAt returns the decision variable by canonical index, no lookup failure path.
func (l *Lattice) XAt(ei, di, si int) cpmodel.BoolVar {
	return l.x[xkey{ei, di, si}]
}

// BuildWork returns work[e,d] = Σ_{s: is_work(s)} X[e,d,s], building it on first request
// and memoizing — "lazily but consistently" per §4.3.
func (l *Lattice) BuildWork(ei, di int) cpmodel.LinearExpr {
	key := edkey{ei, di}
	if expr, ok := l.work[key]; ok {
		return expr
	}
	expr := cpmodel.NewLinearExpr()
	for _, s := range l.WorkShifts {
		si := l.shiftIndex[s]
		expr.Add(l.x[xkey{ei, di, si}])
	}
	l.work[key] = expr
	return expr
}

// BuildMinutes returns minutes[e,d] = Σ_s shifts[s].minutes · X[e,d,s], memoized like work.
func (l *Lattice) BuildMinutes(ei, di int) cpmodel.LinearExpr {
	key := edkey{ei, di}
	if expr, ok := l.minutes[key]; ok {
		return expr
	}
	expr := cpmodel.NewLinearExpr()
	for si, s := range l.Shifts {
		def := l.ShiftDefs[s]
		if def.Minutes == 0 {
			continue
		}
		expr.AddTerm(l.x[xkey{ei, di, si}], int64(def.Minutes))
	}
	l.minutes[key] = expr
	return expr
}

// SortedEmployeeOrder returns a copy of the employee axis sorted lexicographically; this
// differs from spec order whenever sets.employees is not listed alphabetically.
func (l *Lattice) SortedEmployeeOrder() []string {
	out := append([]string(nil), l.Employees...)
	sort.Strings(out)
	return out
}
