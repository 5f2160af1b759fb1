package errors

import "testing"

func TestValidationErrors_累积错误并标记HasErrors(t *testing.T) {
	ve := &ValidationErrors{Code: CodeSchemaViolation}
	if ve.HasErrors() {
		t.Fatal("空集合不应报告有错误")
	}
	ve.Add("sets.days", "不能为空")
	ve.Add("sets.shifts", "不能为空")
	if !ve.HasErrors() {
		t.Fatal("添加错误后应报告有错误")
	}
	if len(ve.Messages()) != 2 {
		t.Fatalf("预期 2 条消息，got %d", len(ve.Messages()))
	}
}

func TestValidationErrors_ToAppError保留Code(t *testing.T) {
	ve := &ValidationErrors{Code: CodeReferenceViolation}
	ve.Add("employees.ghost", "未在 sets.employees 中声明")
	app := ve.ToAppError()
	if app.Code != CodeReferenceViolation {
		t.Errorf("预期 Code=%s，got %s", CodeReferenceViolation, app.Code)
	}
}

func TestCompilerErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code Code
	}{
		{"schema", SchemaViolation("sets.days", "格式错误"), CodeSchemaViolation},
		{"reference", ReferenceViolation("employees.e1", "未知引用"), CodeReferenceViolation},
		{"capacity", CapacityViolation("格点规模超限"), CodeCapacityViolation},
		{"infeasible", Infeasible("约束集合不可满足"), CodeInfeasible},
		{"engine", EngineError(ErrNotFound), CodeEngineError},
		{"timeout", Timeout("求解超时"), CodeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("预期 Code=%s，got %s", tt.code, tt.err.Code)
			}
		})
	}
}
