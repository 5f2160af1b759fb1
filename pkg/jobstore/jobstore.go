// Package jobstore is the external job registry C9 assumes exists: create job -> id,
// set status, store result blob, fetch by id (§1 out-of-scope collaborator). Two
// implementations share one interface, following the teacher's Repository[T] idiom.
package jobstore

import (
	"context"
	"time"

	"github.com/rosterc/rosterc/pkg/project"
	"github.com/rosterc/rosterc/pkg/solve"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Result is the persisted solve output for a done job (§6 job result shape).
type Result struct {
	Status         solve.Status      `json:"status"`
	ObjectiveValue int64             `json:"objective_value"`
	Schedule       *project.Schedule `json:"schedule"`
	Flat           []project.FlatRow `json:"flat"`
	Penalties      map[string]int64  `json:"penalties"`
}

// Job is one record in the registry.
type Job struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	Bound     *int64    `json:"bound,omitempty"`
	Result    *Result   `json:"result,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the external job registry's assumed surface (§1, §6): create job -> id,
// set status, store result blob, fetch by id.
type Store interface {
	Create(ctx context.Context) (string, error)
	SetStatus(ctx context.Context, id string, status Status, bound *int64) error
	SetResult(ctx context.Context, id string, result *Result) error
	SetFailed(ctx context.Context, id string, message string) error
	Get(ctx context.Context, id string) (*Job, error)
}
