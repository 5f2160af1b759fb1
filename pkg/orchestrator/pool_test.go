package orchestrator

import (
	"context"
	"testing"

	"github.com/rosterc/rosterc/pkg/solve"
)

func TestPool_并发提交多个任务全部成功且结果按请求顺序返回(t *testing.T) {
	fake := solve.FakeEngine{RawStatus: "OPTIMAL"}
	orch := newOrchestratorWithFake(fake)
	pool := NewPool(2, orch)

	requests := make([]SubmitRequest, 5)
	for i := range requests {
		requests[i] = SubmitRequest{Spec: trivialSpec(), MaxTimeSeconds: 5, Workers: 1}
	}

	results := pool.SubmitBatch(context.Background(), requests)
	if len(results) != len(requests) {
		t.Fatalf("预期 %d 条结果，got %d", len(requests), len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("结果[%d].Index = %d，应与位置一致", i, r.Index)
		}
		if r.Err != nil {
			t.Errorf("结果[%d] 意外错误: %v", i, r.Err)
		}
		if r.JobID == "" {
			t.Errorf("结果[%d] 应携带任务 id", i)
		}
	}
}

func TestPool_worker数非正时默认为4(t *testing.T) {
	pool := NewPool(0, newOrchestratorWithFake(solve.FakeEngine{RawStatus: "OPTIMAL"}))
	if pool.workers != 4 {
		t.Errorf("预期默认 workers=4，got %d", pool.workers)
	}
}

func TestPool_空请求列表返回空结果(t *testing.T) {
	pool := NewPool(2, newOrchestratorWithFake(solve.FakeEngine{RawStatus: "OPTIMAL"}))
	results := pool.SubmitBatch(context.Background(), nil)
	if results != nil {
		t.Errorf("预期空结果，got %v", results)
	}
}
