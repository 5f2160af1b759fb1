package lower

import (
	"testing"

	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/roster"
)

func buildTestLattice(t *testing.T) *lattice.Lattice {
	t.Helper()
	spec := &roster.NormalizedSpec{
		Sets: roster.Sets{
			Employees: []string{"e1", "e2"},
			Days:      []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04"},
			Shifts:    []string{"D", "N", "OFF"},
			Sites:     []string{"s1"},
		},
		Shifts: map[string]roster.ShiftDef{
			"D":   {Start: "08:00", End: "16:00", Minutes: 480, IsWork: true},
			"N":   {Start: "22:00", End: "06:00", Minutes: 480, IsWork: true},
			"OFF": {Start: "00:00", End: "00:00", Minutes: 0, IsWork: false},
		},
		WorkShifts: []string{"D", "N"},
		Employees: map[string]roster.EmployeeDef{
			"e1": {Contract: roster.Contract{Type: "full_time"}},
			"e2": {Contract: roster.Contract{Type: "full_time"}},
		},
	}
	l, err := lattice.Build(spec, 1_000_000)
	if err != nil {
		t.Fatalf("lattice.Build 失败: %v", err)
	}
	return l
}

func TestLowerHard_exactlyOne形状不匹配应报错(t *testing.T) {
	l := buildTestLattice(t)
	rule := roster.ExactlyOneAssignmentPerDay{Shifts: []string{"D", "N"}} // 缺少 OFF
	if err := LowerHard(l, l.Employees, rule); err == nil {
		t.Fatal("data.shifts 与 sets.shifts 不等应报错")
	}
}

func TestLowerHard_exactlyOne形状匹配时不报错(t *testing.T) {
	l := buildTestLattice(t)
	rule := roster.ExactlyOneAssignmentPerDay{Shifts: []string{"D", "N", "OFF"}}
	if err := LowerHard(l, l.Employees, rule); err != nil {
		t.Fatalf("意外错误: %v", err)
	}
}

func TestLowerHard_forbidShiftSequences不报错(t *testing.T) {
	l := buildTestLattice(t)
	rule := roster.ForbidShiftSequences{Pairs: []roster.ShiftPair{{Prev: "N", Next: "D"}}}
	if err := LowerHard(l, l.Employees, rule); err != nil {
		t.Fatalf("意外错误: %v", err)
	}
}

func TestLowerHard_maxConsecutiveWorkDays不报错(t *testing.T) {
	l := buildTestLattice(t)
	rule := roster.MaxConsecutiveWorkDays{Max: 2}
	if err := LowerHard(l, l.Employees, rule); err != nil {
		t.Fatalf("意外错误: %v", err)
	}
}

func TestLowerHard_minConsecutiveDaysOff小于等于1时跳过(t *testing.T) {
	l := buildTestLattice(t)
	rule := roster.MinConsecutiveDaysOff{Min: 1}
	if err := LowerHard(l, l.Employees, rule); err != nil {
		t.Fatalf("意外错误: %v", err)
	}
}

func TestLowerHard_未识别变体应报错(t *testing.T) {
	l := buildTestLattice(t)
	if err := LowerHard(l, l.Employees, unknownHardRule{}); err == nil {
		t.Fatal("未识别的 HardRule 变体应报错")
	}
}

type unknownHardRule struct{}

func (unknownHardRule) HardKind() string { return "unknown" }

func TestLowerDemandCoverage_未知日期应报错(t *testing.T) {
	l := buildTestLattice(t)
	spec := &roster.NormalizedSpec{
		Demand:    []roster.DemandEntry{{Day: "2099-01-01", Site: "s1", Shift: "D", Eq: intPtrLower(1)}},
		Employees: map[string]roster.EmployeeDef{"e1": {}, "e2": {}},
	}
	if err := LowerDemandCoverage(l, spec); err == nil {
		t.Fatal("引用未知日期应报错")
	}
}

func TestLowerDemandCoverage_已知条目不报错(t *testing.T) {
	l := buildTestLattice(t)
	spec := &roster.NormalizedSpec{
		Demand: []roster.DemandEntry{
			{Day: "2026-01-01", Site: "s1", Shift: "D", Eq: intPtrLower(1)},
		},
		Employees: map[string]roster.EmployeeDef{"e1": {}, "e2": {}},
	}
	if err := LowerDemandCoverage(l, spec); err != nil {
		t.Fatalf("意外错误: %v", err)
	}
}

func intPtrLower(n int) *int { return &n }

func TestSameSet(t *testing.T) {
	if !sameSet([]string{"a", "b"}, []string{"b", "a"}) {
		t.Error("顺序不同但集合相同应视为相等")
	}
	if sameSet([]string{"a"}, []string{"a", "b"}) {
		t.Error("长度不同不应视为相等")
	}
	if sameSet([]string{"a", "c"}, []string{"a", "b"}) {
		t.Error("元素不同不应视为相等")
	}
}
