package roster

import "testing"

func validSpec() *Spec {
	return &Spec{
		Sets: Sets{
			Employees: []string{"e1", "e2"},
			Days:      []string{"2026-01-01", "2026-01-02"},
			Shifts:    []string{"D", "OFF"},
			Sites:     []string{"s1"},
		},
		Shifts: map[string]ShiftDef{
			"D":   {Start: "08:00", End: "16:00", Minutes: 480, IsWork: true},
			"OFF": {Start: "00:00", End: "00:00", Minutes: 0, IsWork: false},
		},
		Employees: map[string]EmployeeDef{
			"e1": {Skills: []string{"nursing"}, Contract: Contract{Type: "full_time"}},
			"e2": {Contract: Contract{Type: "part_time"}},
		},
		Demand: []DemandEntry{
			{Day: "2026-01-01", Site: "s1", Shift: "D", Eq: intPtr(1)},
		},
		Constraints: []ConstraintSpec{
			{ID: "c1", Kind: "exactly_one_assignment_per_day", Category: "hard", Scope: Scope{Employees: []string{"ALL"}}},
		},
		Objective: Objective{
			Mode:  "minimize",
			Terms: []ObjectiveTerm{{Kind: "soft_penalties_total", Weight: 1}},
		},
	}
}

func intPtr(n int) *int { return &n }

func TestValidate_有效规范应通过(t *testing.T) {
	ve := Validate(validSpec())
	if ve.HasErrors() {
		t.Fatalf("预期无错误，got %v", ve.Messages())
	}
}

func TestValidate_累积所有违反项而不短路(t *testing.T) {
	spec := validSpec()
	spec.Sets.Employees = nil
	spec.Sets.Days = []string{"not-a-date"}
	spec.Sets.Shifts = []string{"D"} // 缺少 OFF
	spec.Demand[0].Eq = nil
	spec.Demand[0].Min = intPtr(2)
	spec.Demand[0].Max = intPtr(1)

	ve := Validate(spec)
	if !ve.HasErrors() {
		t.Fatal("预期有错误")
	}
	msgs := ve.Messages()
	if len(msgs) < 4 {
		t.Fatalf("预期至少 4 条独立违反项，got %d: %v", len(msgs), msgs)
	}
}

func TestValidate_demand_eq与minmax互斥(t *testing.T) {
	spec := validSpec()
	spec.Demand[0].Min = intPtr(1)
	ve := Validate(spec)
	if !ve.HasErrors() {
		t.Fatal("eq 与 min 同时出现应报错")
	}
}

func TestValidate_off班次形状校验(t *testing.T) {
	spec := validSpec()
	off := spec.Shifts["OFF"]
	off.IsWork = true
	spec.Shifts["OFF"] = off
	ve := Validate(spec)
	if !ve.HasErrors() {
		t.Fatal("OFF 班次被标记为 is_work=true 应报错")
	}
}

func TestValidate_软规则缺失penalty应报错(t *testing.T) {
	spec := validSpec()
	spec.Constraints = append(spec.Constraints, ConstraintSpec{
		ID: "c2", Kind: "penalize_work_on_days", Category: "soft", Scope: Scope{Employees: []string{"ALL"}},
	})
	ve := Validate(spec)
	if !ve.HasErrors() {
		t.Fatal("soft 规则缺少 penalty.weight 应报错")
	}
}
