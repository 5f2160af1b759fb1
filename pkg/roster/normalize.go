package roster

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/rosterc/rosterc/pkg/errors"
)

// Normalize performs the cross-reference checks C1's schema cannot express: every id
// resolves, OFF carries the exact rest shape, days are strictly increasing, every
// constraint kind is recognized, and scope.employees is expanded (ALL -> full set).
// Reports all violations in one pass, exactly like Validate.
func Normalize(spec *Spec) (*NormalizedSpec, *apperrors.ValidationErrors) {
	ve := &apperrors.ValidationErrors{Code: apperrors.CodeReferenceViolation}

	empSet := map[string]bool{}
	for _, e := range spec.Sets.Employees {
		empSet[e] = true
	}
	siteSet := map[string]bool{}
	for _, s := range spec.Sets.Sites {
		siteSet[s] = true
	}
	shiftSet := map[string]bool{}
	for _, s := range spec.Sets.Shifts {
		shiftSet[s] = true
	}

	for i := 1; i < len(spec.Sets.Days); i++ {
		if spec.Sets.Days[i] <= spec.Sets.Days[i-1] {
			ve.Add("sets.days", fmt.Sprintf("日期序列必须严格递增，'%s' 之后出现 '%s'", spec.Sets.Days[i-1], spec.Sets.Days[i]))
		}
	}

	off, hasOff := spec.Shifts[RestShift]
	if !hasOff {
		ve.Add("shifts.OFF", "必须声明休息班次")
	} else if off.Start != "00:00" || off.End != "00:00" || off.Minutes != 0 || off.IsWork {
		ve.Add("shifts.OFF", "休息班次的形状必须是 {00:00,00:00,0,false}")
	}

	for id, emp := range spec.Employees {
		if !empSet[id] {
			ve.Add(fmt.Sprintf("employees.%s", id), "未在 sets.employees 中声明")
		}
		if emp.SiteHome != "" && !siteSet[emp.SiteHome] {
			ve.Add(fmt.Sprintf("employees.%s.site_home", id), fmt.Sprintf("未知站点 '%s'", emp.SiteHome))
		}
	}

	for i, d := range spec.Demand {
		field := fmt.Sprintf("demand[%d]", i)
		if !siteSet[d.Site] {
			ve.Add(field+".site", fmt.Sprintf("未知站点 '%s'", d.Site))
		}
		if def, ok := spec.Shifts[d.Shift]; !ok {
			ve.Add(field+".shift", fmt.Sprintf("未知班次 '%s'", d.Shift))
		} else if !def.IsWork {
			ve.Add(field+".shift", fmt.Sprintf("需求班次 '%s' 必须是工作班次", d.Shift))
		}
		dayFound := false
		for _, day := range spec.Sets.Days {
			if day == d.Day {
				dayFound = true
				break
			}
		}
		if !dayFound {
			ve.Add(field+".day", fmt.Sprintf("未知日期 '%s'", d.Day))
		}
	}

	rules := make([]NormalizedRule, 0, len(spec.Constraints))
	for i, c := range spec.Constraints {
		field := fmt.Sprintf("constraints[%d]", i)
		scope := expandScope(c.Scope.Employees, spec.Sets.Employees, empSet, field, ve)

		switch c.Category {
		case "hard":
			rule, err := decodeHardRule(c.Kind, c.Data)
			if err != nil {
				ve.Add(field+".kind", err.Error())
				continue
			}
			rules = append(rules, NormalizedRule{ID: c.ID, Category: "hard", Scope: scope, Hard: rule})
		case "soft":
			rule, err := decodeSoftRule(c.Kind, c.Data)
			if err != nil {
				ve.Add(field+".kind", err.Error())
				continue
			}
			weight := 0
			if c.Penalty != nil {
				weight = c.Penalty.Weight
			}
			rules = append(rules, NormalizedRule{ID: c.ID, Category: "soft", Scope: scope, Penalty: weight, Soft: rule})
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}

	workShifts := make([]string, 0, len(spec.Sets.Shifts))
	for _, s := range spec.Sets.Shifts {
		if s != RestShift {
			workShifts = append(workShifts, s)
		}
	}

	globalWeight := 1
	if len(spec.Objective.Terms) == 1 {
		globalWeight = spec.Objective.Terms[0].Weight
	}

	return &NormalizedSpec{
		Sets:         spec.Sets,
		Shifts:       spec.Shifts,
		WorkShifts:   workShifts,
		Employees:    spec.Employees,
		Demand:       spec.Demand,
		Rules:        rules,
		GlobalWeight: globalWeight,
	}, nil
}

// expandScope resolves "ALL" to the full employee set (spec order) and validates every
// explicit id resolves; reference violations are appended to ve rather than thrown.
func expandScope(scope []string, all []string, allSet map[string]bool, field string, ve *apperrors.ValidationErrors) []string {
	for _, id := range scope {
		if id == "ALL" {
			return append([]string(nil), all...)
		}
	}
	out := make([]string, 0, len(scope))
	for _, id := range scope {
		if !allSet[id] {
			ve.Add(field+".scope.employees", fmt.Sprintf("未知员工 '%s'", id))
			continue
		}
		out = append(out, id)
	}
	return out
}

func decodeHardRule(kind string, data json.RawMessage) (HardRule, error) {
	switch kind {
	case HardKindExactlyOneAssignmentPerDay:
		var r ExactlyOneAssignmentPerDay
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case HardKindForbidShiftSequences:
		var r ForbidShiftSequences
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case HardKindMaxShiftsInWindow:
		var r MaxShiftsInWindow
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		if r.Mode == "" {
			r.Mode = "rolling"
		} else if r.Mode != "rolling" {
			return nil, fmt.Errorf("kind '%s' 的 mode '%s' 不受支持，目前仅支持 rolling", kind, r.Mode)
		}
		return r, nil
	case HardKindMinRestMinutesBetweenShifts:
		var r MinRestMinutesBetweenShifts
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case HardKindMaxWorkMinutesInWindow:
		var r MaxWorkMinutesInWindow
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case HardKindMaxConsecutiveWorkDays:
		var r MaxConsecutiveWorkDays
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case HardKindMinConsecutiveDaysOff:
		var r MinConsecutiveDaysOff
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("未识别的 hard kind '%s'", kind)
	}
}

func decodeSoftRule(kind string, data json.RawMessage) (SoftRule, error) {
	switch kind {
	case SoftKindPenalizeWorkOnDays:
		var r PenalizeWorkOnDays
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case SoftKindPenalizeWorkOnShifts:
		var r PenalizeWorkOnShifts
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case SoftKindPenalizeUnmetDayOffRequests:
		var r PenalizeUnmetDayOffRequests
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	case SoftKindFairDistribution:
		var r FairDistribution
		if err := unmarshalIfPresent(data, &r); err != nil {
			return nil, fmt.Errorf("kind '%s' 的 data 字段解码失败: %w", kind, err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("未识别的 soft kind '%s'", kind)
	}
}

func unmarshalIfPresent(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
