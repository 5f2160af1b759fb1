package lower

import (
	"testing"

	"github.com/rosterc/rosterc/pkg/roster"
)

func TestAssembleObjective_汇总多条penalty不报错(t *testing.T) {
	l := buildTestLattice(t)

	p1, err := LowerSoft(l, l.Employees, "r1", 1, roster.PenalizeWorkOnDays{Days: []string{"2026-01-01"}})
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	p2, err := LowerSoft(l, l.Employees, "r2", 5, roster.PenalizeWorkOnShifts{Shifts: []string{"N"}})
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}

	_ = AssembleObjective(l, []Penalty{p1, p2}, 1)
}

func TestAssembleObjective_无penalty时不报错(t *testing.T) {
	l := buildTestLattice(t)
	_ = AssembleObjective(l, nil, 1)
}

func TestAssembleObjective_每条penalty携带自身规则weight(t *testing.T) {
	l := buildTestLattice(t)

	light, err := LowerSoft(l, l.Employees, "light", 1, roster.PenalizeWorkOnDays{Days: []string{"2026-01-01"}})
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	heavy, err := LowerSoft(l, l.Employees, "heavy", 5, roster.PenalizeWorkOnShifts{Shifts: []string{"N"}})
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if light.Weight != 1 {
		t.Fatalf("预期 light.Weight=1，got %d", light.Weight)
	}
	if heavy.Weight != 5 {
		t.Fatalf("预期 heavy.Weight=5，got %d", heavy.Weight)
	}

	// The checks above cover the per-rule weights AssembleObjective reads from each
	// Penalty; the coefficients it installs in the model are not inspected here.
	_ = AssembleObjective(l, []Penalty{light, heavy}, 1)
}
