package roster

import (
	"fmt"
	"regexp"

	apperrors "github.com/rosterc/rosterc/pkg/errors"
)

var (
	dayPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Validate 对 spec 施加声明式结构校验，报告**全部**违反项，从不在第一个错误处短路。
// 失败种类：字段缺失、格式不符、eq 与 min/max 同时出现、负数 minutes 等。
// 它检查的是已解码的 Spec 结构体，因此不检测未知顶层键与原始类型错误。
func Validate(spec *Spec) *apperrors.ValidationErrors {
	ve := &apperrors.ValidationErrors{Code: apperrors.CodeSchemaViolation}

	if len(spec.Sets.Employees) == 0 {
		ve.Add("sets.employees", "不能为空")
	}
	seenEmp := map[string]bool{}
	for _, e := range spec.Sets.Employees {
		if e == "" {
			ve.Add("sets.employees", "员工 id 不能为空字符串")
			continue
		}
		if seenEmp[e] {
			ve.Add("sets.employees", fmt.Sprintf("重复的员工 id: %s", e))
		}
		seenEmp[e] = true
	}

	if len(spec.Sets.Days) == 0 {
		ve.Add("sets.days", "不能为空")
	}
	for _, d := range spec.Sets.Days {
		if !dayPattern.MatchString(d) {
			ve.Add("sets.days", fmt.Sprintf("日期 '%s' 不符合 YYYY-MM-DD 格式", d))
		}
	}

	if len(spec.Sets.Shifts) == 0 {
		ve.Add("sets.shifts", "不能为空")
	}
	hasOff := false
	seenShift := map[string]bool{}
	for _, s := range spec.Sets.Shifts {
		if s == RestShift {
			hasOff = true
		}
		if seenShift[s] {
			ve.Add("sets.shifts", fmt.Sprintf("重复的班次标签: %s", s))
		}
		seenShift[s] = true
	}
	if !hasOff {
		ve.Add("sets.shifts", fmt.Sprintf("必须包含休息标签 '%s'", RestShift))
	}

	for label, def := range spec.Shifts {
		field := fmt.Sprintf("shifts.%s", label)
		if !timePattern.MatchString(def.Start) {
			ve.Add(field+".start", fmt.Sprintf("'%s' 不符合 HH:MM 格式", def.Start))
		}
		if !timePattern.MatchString(def.End) {
			ve.Add(field+".end", fmt.Sprintf("'%s' 不符合 HH:MM 格式", def.End))
		}
		if def.Minutes < 0 {
			ve.Add(field+".minutes", "不能为负数")
		}
		if label == RestShift {
			if def.Start != "00:00" || def.End != "00:00" || def.Minutes != 0 || def.IsWork {
				ve.Add(field, "休息班次必须是 {\"00:00\",\"00:00\",0,false}")
			}
		}
	}

	for id, emp := range spec.Employees {
		field := fmt.Sprintf("employees.%s", id)
		if emp.Contract.Type == "" {
			ve.Add(field+".contract.type", "不能为空")
		}
	}

	for i, d := range spec.Demand {
		field := fmt.Sprintf("demand[%d]", i)
		if d.Day == "" {
			ve.Add(field+".day", "不能为空")
		}
		if d.Site == "" {
			ve.Add(field+".site", "不能为空")
		}
		if d.Shift == "" {
			ve.Add(field+".shift", "不能为空")
		}
		if d.Eq != nil && (d.Min != nil || d.Max != nil) {
			ve.Add(field, "eq 与 min/max 互斥，不可同时出现")
		}
		if d.Eq == nil && d.Min == nil && d.Max == nil {
			ve.Add(field, "必须指定 eq 或 min/max 之一")
		}
		if d.Eq != nil && *d.Eq < 0 {
			ve.Add(field+".eq", "不能为负数")
		}
		if d.Min != nil && *d.Min < 0 {
			ve.Add(field+".min", "不能为负数")
		}
		if d.Max != nil && d.Min != nil && *d.Max < *d.Min {
			ve.Add(field, "max 不能小于 min")
		}
	}

	for i, c := range spec.Constraints {
		field := fmt.Sprintf("constraints[%d]", i)
		if c.Kind == "" {
			ve.Add(field+".kind", "不能为空")
		}
		if c.Category != "hard" && c.Category != "soft" {
			ve.Add(field+".category", fmt.Sprintf("未知取值 '%s'，必须是 hard 或 soft", c.Category))
		}
		if c.Category == "soft" && c.Penalty == nil {
			ve.Add(field+".penalty", "软规则必须携带 penalty.weight")
		}
		if c.Penalty != nil && c.Penalty.Weight < 0 {
			ve.Add(field+".penalty.weight", "不能为负数")
		}
	}

	if spec.Objective.Mode != "minimize" {
		ve.Add("objective.mode", fmt.Sprintf("未知取值 '%s'，目前仅支持 minimize", spec.Objective.Mode))
	}
	if len(spec.Objective.Terms) != 1 || spec.Objective.Terms[0].Kind != "soft_penalties_total" {
		ve.Add("objective.terms", "必须恰好包含一项 kind=soft_penalties_total")
	} else if spec.Objective.Terms[0].Weight < 0 {
		ve.Add("objective.terms[0].weight", "不能为负数")
	}

	return ve
}
