package roster

// Recognized hard and soft kinds (§4.2). Unknown kinds are a reference violation, never
// silently accepted — the switch in decodeHardRule/decodeSoftRule is closed over exactly
// these constants.
const (
	HardKindExactlyOneAssignmentPerDay = "exactly_one_assignment_per_day"
	HardKindForbidShiftSequences       = "forbid_shift_sequences"
	HardKindMaxShiftsInWindow          = "max_shifts_in_window"
	HardKindMinRestMinutesBetweenShifts = "min_rest_minutes_between_shifts"
	HardKindMaxWorkMinutesInWindow     = "max_work_minutes_in_window"
	HardKindMaxConsecutiveWorkDays     = "max_consecutive_work_days"
	HardKindMinConsecutiveDaysOff      = "min_consecutive_days_off"

	SoftKindPenalizeWorkOnDays           = "penalize_work_on_days"
	SoftKindPenalizeWorkOnShifts         = "penalize_work_on_shifts"
	SoftKindPenalizeUnmetDayOffRequests  = "penalize_unmet_day_off_requests"
	SoftKindFairDistribution             = "fair_distribution"
)

// HardRule is the closed tagged-variant interface for recognized hard rule kinds.
// Adding a kind means adding a struct here and a case in decodeHardRule and in
// pkg/lower's lowering switch — nothing else.
type HardRule interface {
	HardKind() string
}

// SoftRule is the closed tagged-variant interface for recognized soft rule kinds.
type SoftRule interface {
	SoftKind() string
}

// ExactlyOneAssignmentPerDay declares that data.shifts must equal sets.shifts (§4.4).
type ExactlyOneAssignmentPerDay struct {
	Shifts []string `json:"shifts"`
}

func (ExactlyOneAssignmentPerDay) HardKind() string { return HardKindExactlyOneAssignmentPerDay }

// ShiftPair is a forbidden (prev, next) shift pair for forbid_shift_sequences.
type ShiftPair struct {
	Prev string `json:"prev_shift"`
	Next string `json:"next_shift"`
}

// ForbidShiftSequences forbids each listed (prev,next) pair across consecutive days.
type ForbidShiftSequences struct {
	Pairs []ShiftPair `json:"pairs"`
}

func (ForbidShiftSequences) HardKind() string { return HardKindForbidShiftSequences }

// MaxShiftsInWindow caps Σ X[e,d,s] for s∈Shifts over every rolling window of WindowDays.
type MaxShiftsInWindow struct {
	WindowDays int      `json:"window_days"`
	Shifts     []string `json:"shifts"`
	Max        int      `json:"max"`
	Mode       string   `json:"mode"`
}

func (MaxShiftsInWindow) HardKind() string { return HardKindMaxShiftsInWindow }

// MinRestMinutesBetweenShifts forbids consecutive-day shift pairs whose gap is under Minutes.
type MinRestMinutesBetweenShifts struct {
	Minutes int `json:"minutes"`
}

func (MinRestMinutesBetweenShifts) HardKind() string { return HardKindMinRestMinutesBetweenShifts }

// MaxWorkMinutesInWindow caps Σ minutes[e,d] over every rolling window of WindowDays.
type MaxWorkMinutesInWindow struct {
	WindowDays int `json:"window_days"`
	Max        int `json:"max"`
}

func (MaxWorkMinutesInWindow) HardKind() string { return HardKindMaxWorkMinutesInWindow }

// MaxConsecutiveWorkDays caps Σ work[e,d] over every span of Max+1 consecutive days to Max.
type MaxConsecutiveWorkDays struct {
	Max int `json:"max"`
}

func (MaxConsecutiveWorkDays) HardKind() string { return HardKindMaxConsecutiveWorkDays }

// MinConsecutiveDaysOff forbids off-runs shorter than Min between two work days.
type MinConsecutiveDaysOff struct {
	Min int `json:"min"`
}

func (MinConsecutiveDaysOff) HardKind() string { return HardKindMinConsecutiveDaysOff }

// PenalizeWorkOnDays penalizes work[e,d] for each d in Days, e in scope.
type PenalizeWorkOnDays struct {
	Days []string `json:"days"`
}

func (PenalizeWorkOnDays) SoftKind() string { return SoftKindPenalizeWorkOnDays }

// PenalizeWorkOnShifts penalizes X[e,d,s] for each s in Shifts, e in scope.
type PenalizeWorkOnShifts struct {
	Shifts []string `json:"shifts"`
}

func (PenalizeWorkOnShifts) SoftKind() string { return SoftKindPenalizeWorkOnShifts }

// DayOffRequest is one entry of penalize_unmet_day_off_requests.
type DayOffRequest struct {
	Employee string `json:"employee"`
	Day      string `json:"day"`
}

// PenalizeUnmetDayOffRequests penalizes work[employee,day] per listed request.
type PenalizeUnmetDayOffRequests struct {
	Requests []DayOffRequest `json:"requests"`
}

func (PenalizeUnmetDayOffRequests) SoftKind() string { return SoftKindPenalizeUnmetDayOffRequests }

// FairDistribution penalizes deviation from the in-model floor-mean count per window.
type FairDistribution struct {
	Measure    string   `json:"measure"`
	Shifts     []string `json:"shifts"`
	WindowDays int      `json:"window_days"`
	Target     string   `json:"target"`
	Penalize   string   `json:"penalize"`
}

func (FairDistribution) SoftKind() string { return SoftKindFairDistribution }

// NormalizedRule pairs a decoded, typed rule variant with its expanded scope and identity.
// Exactly one of Hard/Soft is set.
type NormalizedRule struct {
	ID       string
	Category string
	Scope    []string // expanded employee ids, spec order
	Penalty  int       // weight, soft rules only
	Hard     HardRule
	Soft     SoftRule
}

// Label returns rule.ID if present, else the rule's kind — used as the penalties map key (§6).
func (r NormalizedRule) Label() string {
	if r.ID != "" {
		return r.ID
	}
	if r.Hard != nil {
		return r.Hard.HardKind()
	}
	return r.Soft.SoftKind()
}

// NormalizedSpec is the output of C2: every reference resolved, every constraint's Data
// decoded into its typed variant and scope fully expanded. Sets are carried over as given,
// in spec order; they are not re-sorted.
type NormalizedSpec struct {
	Sets        Sets
	Shifts      map[string]ShiftDef
	WorkShifts  []string // sets.shifts minus OFF, in spec order
	Employees   map[string]EmployeeDef
	Demand      []DemandEntry
	Rules       []NormalizedRule
	GlobalWeight int
}
