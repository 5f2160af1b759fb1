// Package roster 定义排班规范（spec）的数据模型：员工、班次、需求与约束规则的声明式文档形状。
package roster

import "encoding/json"

// RestShift 是休息班次的保留标签，必须出现在 sets.shifts 中。
const RestShift = "OFF"

// Spec 是输入文档的顶层六个分组。
type Spec struct {
	Sets        Sets                  `json:"sets"`
	Shifts      map[string]ShiftDef   `json:"shifts"`
	Employees   map[string]EmployeeDef `json:"employees"`
	Demand      []DemandEntry         `json:"demand"`
	Constraints []ConstraintSpec      `json:"constraints"`
	Objective   Objective             `json:"objective"`
}

// Sets 是标识符集合：员工、日历日、班次标签、站点。
type Sets struct {
	Employees []string `json:"employees"`
	Days      []string `json:"days"`
	Shifts    []string `json:"shifts"`
	Sites     []string `json:"sites"`
}

// ShiftDef 描述一个班次模板：起止时刻与分钟数，minutes 是权威值，start/end 仅供参考。
type ShiftDef struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
	IsWork  bool   `json:"is_work"`
}

// EmployeeDef 描述一名员工的技能、角色、主站点与合同类型。
type EmployeeDef struct {
	Skills   []string `json:"skills"`
	Roles    []string `json:"roles"`
	SiteHome string   `json:"site_home,omitempty"`
	Contract Contract `json:"contract"`
}

// Contract 是员工的合同分类，目前仅承载类型字符串。
type Contract struct {
	Type string `json:"type"`
}

// HasSkill 报告该员工是否具备给定技能。
func (e EmployeeDef) HasSkill(skill string) bool {
	for _, s := range e.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// SkillMin 是 demand.requirements.skills_min 的一项：某技能所需的最低人数。
type SkillMin struct {
	Skill string `json:"skill"`
	Min   int    `json:"min"`
}

// DemandRequirements 携带需求条目的附加技能门槛。
type DemandRequirements struct {
	SkillsMin []SkillMin `json:"skills_min,omitempty"`
}

// DemandEntry 是一条 (day,site,shift) 覆盖需求；eq 与 min/max 互斥。
type DemandEntry struct {
	Day          string              `json:"day"`
	Site         string              `json:"site"`
	Shift        string              `json:"shift"`
	Eq           *int                `json:"eq,omitempty"`
	Min          *int                `json:"min,omitempty"`
	Max          *int                `json:"max,omitempty"`
	Requirements *DemandRequirements `json:"requirements,omitempty"`
}

// IsExact 报告该需求条目是否使用 eq 形式。
func (d DemandEntry) IsExact() bool { return d.Eq != nil }

// Scope 标识一条约束规则适用的员工集合；"ALL" 在归一化阶段展开为全集。
type Scope struct {
	Employees []string `json:"employees"`
}

// Penalty 携带软规则的权重。
type Penalty struct {
	Weight int `json:"weight"`
}

// ConstraintSpec 是一条原始规则条目；Data 在 C2 归一化阶段被解码为具体的带标签变体。
type ConstraintSpec struct {
	ID       string          `json:"id,omitempty"`
	Kind     string          `json:"kind"`
	Category string          `json:"category"` // "hard" | "soft"
	Scope    Scope           `json:"scope"`
	Data     json.RawMessage `json:"data,omitempty"`
	Penalty  *Penalty        `json:"penalty,omitempty"`
}

// ObjectiveTerm 是目标函数中的一项；目前唯一承认的 kind 是 soft_penalties_total。
type ObjectiveTerm struct {
	Kind   string `json:"kind"`
	Weight int    `json:"weight"`
}

// Objective 固定形状为 {mode:"minimize", terms:[...]}。
type Objective struct {
	Mode  string          `json:"mode"`
	Terms []ObjectiveTerm `json:"terms"`
}
