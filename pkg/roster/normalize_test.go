package roster

import "testing"

func TestNormalize_有效规范应产出归一化结果(t *testing.T) {
	norm, ve := Normalize(validSpec())
	if ve != nil && ve.HasErrors() {
		t.Fatalf("预期无错误，got %v", ve.Messages())
	}
	if len(norm.Rules) != 1 {
		t.Fatalf("预期 1 条规则，got %d", len(norm.Rules))
	}
	if norm.Rules[0].Category != "hard" {
		t.Errorf("预期 hard 规则，got %s", norm.Rules[0].Category)
	}
	if len(norm.Rules[0].Scope) != 2 {
		t.Errorf("ALL 应展开为全体 2 名员工，got %d", len(norm.Rules[0].Scope))
	}
	if len(norm.WorkShifts) != 1 || norm.WorkShifts[0] != "D" {
		t.Errorf("WorkShifts 应只含 D，got %v", norm.WorkShifts)
	}
}

func TestNormalize_未声明员工引用应报错(t *testing.T) {
	spec := validSpec()
	spec.Employees["ghost"] = EmployeeDef{Contract: Contract{Type: "full_time"}}
	_, ve := Normalize(spec)
	if ve == nil || !ve.HasErrors() {
		t.Fatal("预期引用校验失败")
	}
}

func TestNormalize_未识别的约束kind应报错(t *testing.T) {
	spec := validSpec()
	spec.Constraints[0].Kind = "not_a_real_kind"
	_, ve := Normalize(spec)
	if ve == nil || !ve.HasErrors() {
		t.Fatal("预期未识别 kind 报错")
	}
}

func TestNormalize_日期非严格递增应报错(t *testing.T) {
	spec := validSpec()
	spec.Sets.Days = []string{"2026-01-02", "2026-01-01"}
	_, ve := Normalize(spec)
	if ve == nil || !ve.HasErrors() {
		t.Fatal("预期日期顺序校验失败")
	}
}

func TestNormalize_需求引用非工作班次应报错(t *testing.T) {
	spec := validSpec()
	spec.Demand[0].Shift = RestShift
	_, ve := Normalize(spec)
	if ve == nil || !ve.HasErrors() {
		t.Fatal("需求引用 OFF 班次应报错")
	}
}

func TestNormalize_scope显式员工列表按序展开(t *testing.T) {
	spec := validSpec()
	spec.Constraints[0].Scope = Scope{Employees: []string{"e2"}}
	norm, ve := Normalize(spec)
	if ve != nil && ve.HasErrors() {
		t.Fatalf("预期无错误，got %v", ve.Messages())
	}
	if len(norm.Rules[0].Scope) != 1 || norm.Rules[0].Scope[0] != "e2" {
		t.Errorf("预期 scope=[e2]，got %v", norm.Rules[0].Scope)
	}
}
