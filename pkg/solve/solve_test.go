package solve

import (
	"context"
	"testing"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/logger"
	"github.com/rosterc/rosterc/pkg/roster"
)

func testLattice(t *testing.T) *lattice.Lattice {
	t.Helper()
	spec := &roster.NormalizedSpec{
		Sets: roster.Sets{
			Employees: []string{"e1"},
			Days:      []string{"2026-01-01"},
			Shifts:    []string{"D", "OFF"},
		},
		Shifts: map[string]roster.ShiftDef{
			"D":   {Start: "08:00", End: "16:00", Minutes: 480, IsWork: true},
			"OFF": {Start: "00:00", End: "00:00", Minutes: 0, IsWork: false},
		},
		WorkShifts: []string{"D"},
	}
	l, err := lattice.Build(spec, 1_000_000)
	if err != nil {
		t.Fatalf("lattice.Build 失败: %v", err)
	}
	return l
}

func TestCollapseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"OPTIMAL", StatusOptimal},
		{"FEASIBLE", StatusFeasible},
		{"INFEASIBLE", StatusInfeasible},
		{"MODEL_INVALID", StatusInfeasible},
		{"UNKNOWN", StatusTimeout},
		{"SOMETHING_ELSE", StatusError},
	}
	for _, tt := range tests {
		if got := collapseStatus(tt.raw); got != tt.want {
			t.Errorf("collapseStatus(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestDriverSolve_可行结果填充assignment(t *testing.T) {
	l := testLattice(t)
	fake := FakeEngine{
		RawStatus: "FEASIBLE",
		Objective: 3,
		Respond: func(l *lattice.Lattice) (map[string]bool, map[string]int64) {
			return map[string]bool{"e1,2026-01-01,D": true, "e1,2026-01-01,OFF": false}, nil
		},
	}
	driver := &Driver{Engine: fake}
	outcome, err := driver.Solve(context.Background(), l, nil, 5, 1, logger.NewCompilerLogger("test"))
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if outcome.Status != StatusFeasible {
		t.Fatalf("预期状态 FEASIBLE，got %s", outcome.Status)
	}
	if !outcome.Assignment["e1"]["2026-01-01"]["D"] {
		t.Error("预期 e1 在 2026-01-01 被分配 D 班次")
	}
}

func TestDriverSolve_不可行结果不填充assignment(t *testing.T) {
	l := testLattice(t)
	fake := FakeEngine{RawStatus: "INFEASIBLE"}
	driver := &Driver{Engine: fake}
	outcome, err := driver.Solve(context.Background(), l, nil, 5, 1, logger.NewCompilerLogger("test"))
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if outcome.Status != StatusInfeasible {
		t.Fatalf("预期状态 INFEASIBLE，got %s", outcome.Status)
	}
	if outcome.Assignment != nil {
		t.Error("INFEASIBLE 时不应填充 assignment")
	}
}

func TestDriverSolve_取消的context立即返回错误(t *testing.T) {
	l := testLattice(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	driver := &Driver{Engine: FakeEngine{RawStatus: "OPTIMAL"}}
	if _, err := driver.Solve(ctx, l, nil, 5, 1, logger.NewCompilerLogger("test")); err == nil {
		t.Fatal("已取消的 context 应立即返回错误")
	}
}
