package jobstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/rosterc/rosterc/pkg/errors"
)

// Memory is a map-backed Store, used by the CLI and all tests — the in-process stand-in
// for the external job registry the spec assumes exists.
type Memory struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

// NewMemory creates an empty in-memory job store.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[string]*Job)}
}

// Create allocates a new job id and records it queued.
func (m *Memory) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[id] = &Job{ID: id, Status: StatusQueued, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

// SetStatus updates a job's lifecycle status and optional best-known bound.
func (m *Memory) SetStatus(ctx context.Context, id string, status Status, bound *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return apperrors.NotFound("job", id)
	}
	j.Status = status
	j.Bound = bound
	j.UpdatedAt = time.Now()
	return nil
}

// SetResult stores the solve result and marks the job done.
func (m *Memory) SetResult(ctx context.Context, id string, result *Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return apperrors.NotFound("job", id)
	}
	j.Status = StatusDone
	j.Result = result
	j.UpdatedAt = time.Now()
	return nil
}

// SetFailed marks the job failed with the given message.
func (m *Memory) SetFailed(ctx context.Context, id string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return apperrors.NotFound("job", id)
	}
	j.Status = StatusFailed
	j.Message = message
	j.UpdatedAt = time.Now()
	return nil
}

// Get fetches a job by id.
func (m *Memory) Get(ctx context.Context, id string) (*Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, apperrors.NotFound("job", id)
	}
	cp := *j
	return &cp, nil
}
