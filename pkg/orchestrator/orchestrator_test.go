package orchestrator

import (
	"context"
	"testing"

	"github.com/rosterc/rosterc/pkg/jobstore"
	"github.com/rosterc/rosterc/pkg/lattice"
	"github.com/rosterc/rosterc/pkg/roster"
	"github.com/rosterc/rosterc/pkg/solve"
)

func trivialSpec() *roster.Spec {
	return &roster.Spec{
		Sets: roster.Sets{
			Employees: []string{"e1"},
			Days:      []string{"2026-01-01"},
			Shifts:    []string{"D", "OFF"},
			Sites:     []string{"s1"},
		},
		Shifts: map[string]roster.ShiftDef{
			"D":   {Start: "08:00", End: "16:00", Minutes: 480, IsWork: true},
			"OFF": {Start: "00:00", End: "00:00", Minutes: 0, IsWork: false},
		},
		Employees: map[string]roster.EmployeeDef{
			"e1": {Contract: roster.Contract{Type: "full_time"}},
		},
		Demand: []roster.DemandEntry{
			{Day: "2026-01-01", Site: "s1", Shift: "D", Eq: intPtr(1)},
		},
		Constraints: []roster.ConstraintSpec{
			{ID: "c1", Kind: "exactly_one_assignment_per_day", Category: "hard", Scope: roster.Scope{Employees: []string{"ALL"}},
				Data: []byte(`{"shifts":["D","OFF"]}`)},
		},
		Objective: roster.Objective{
			Mode:  "minimize",
			Terms: []roster.ObjectiveTerm{{Kind: "soft_penalties_total", Weight: 1}},
		},
	}
}

func intPtr(n int) *int { return &n }

func newOrchestratorWithFake(engine solve.Engine) *Orchestrator {
	return &Orchestrator{
		Store:    jobstore.NewMemory(),
		Driver:   &solve.Driver{Engine: engine},
		MaxCells: 1_000_000,
	}
}

func TestSubmit_无效规范不创建任务(t *testing.T) {
	orch := newOrchestratorWithFake(solve.FakeEngine{RawStatus: "OPTIMAL"})
	spec := trivialSpec()
	spec.Sets.Employees = nil // 触发 C1 校验失败

	id, messages, err := orch.Submit(context.Background(), spec, 5, 1)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if id != "" {
		t.Errorf("校验失败时不应分配任务 id，got %q", id)
	}
	if len(messages) == 0 {
		t.Error("预期有校验错误消息")
	}
}

func TestSubmit_可行求解后任务状态为done并含排班结果(t *testing.T) {
	fake := solve.FakeEngine{
		RawStatus: "OPTIMAL",
		Objective: 0,
		Respond: func(l *lattice.Lattice) (map[string]bool, map[string]int64) {
			return map[string]bool{
				"e1,2026-01-01,D":   true,
				"e1,2026-01-01,OFF": false,
			}, nil
		},
	}
	orch := newOrchestratorWithFake(fake)

	id, messages, err := orch.Submit(context.Background(), trivialSpec(), 5, 1)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("预期无校验错误，got %v", messages)
	}

	job, err := orch.Store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if job.Status != jobstore.StatusDone {
		t.Fatalf("预期任务状态 done，got %s（原因: %s）", job.Status, job.Message)
	}
	if job.Result == nil || len(job.Result.Flat) != 1 {
		t.Fatalf("预期恰好 1 条排班记录，got %+v", job.Result)
	}
	if job.Result.Flat[0].Employee != "e1" {
		t.Errorf("预期员工 e1 被排入 D 班次，got %+v", job.Result.Flat[0])
	}
}

func TestSubmit_不可满足求解后任务状态为failed(t *testing.T) {
	fake := solve.FakeEngine{RawStatus: "INFEASIBLE"}
	orch := newOrchestratorWithFake(fake)

	id, messages, err := orch.Submit(context.Background(), trivialSpec(), 5, 1)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("预期无校验错误，got %v", messages)
	}

	job, err := orch.Store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if job.Status != jobstore.StatusFailed {
		t.Fatalf("预期任务状态 failed，got %s", job.Status)
	}
}

func TestValidateOnly_不创建任何任务(t *testing.T) {
	orch := newOrchestratorWithFake(solve.FakeEngine{RawStatus: "OPTIMAL"})
	ok, messages := orch.ValidateOnly(trivialSpec())
	if !ok {
		t.Fatalf("预期校验通过，got messages=%v", messages)
	}
}
