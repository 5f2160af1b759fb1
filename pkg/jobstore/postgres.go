package jobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	apperrors "github.com/rosterc/rosterc/pkg/errors"
	"github.com/rosterc/rosterc/internal/repository"
)

// Postgres is a lib/pq-backed Store, same schema shape as the teacher's
// internal/repository/schedule.go: id, status, result jsonb, bound, timestamps.
// Wired for completeness per the external job registry the spec assumes exists; nothing
// in this repo's own test suite exercises it.
type Postgres struct {
	db repository.DB
}

// NewPostgres wraps an existing DB handle (typically *sql.DB opened with the "postgres"
// driver lib/pq registers) behind the Store interface.
func NewPostgres(db repository.DB) *Postgres {
	return &Postgres{db: db}
}

// Create allocates a new job id and inserts it queued.
func (p *Postgres) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	query := `
		INSERT INTO compiler_jobs (id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := p.db.ExecContext(ctx, query, id, StatusQueued, now, now); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "创建任务记录失败")
	}
	return id, nil
}

// SetStatus updates a job's lifecycle status and optional best-known bound.
func (p *Postgres) SetStatus(ctx context.Context, id string, status Status, bound *int64) error {
	query := `UPDATE compiler_jobs SET status = $1, bound = $2, updated_at = $3 WHERE id = $4`
	res, err := p.db.ExecContext(ctx, query, status, bound, time.Now(), id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "更新任务状态失败")
	}
	return checkRowsAffected(res, id)
}

// SetResult stores the solve result as jsonb and marks the job done.
func (p *Postgres) SetResult(ctx context.Context, id string, result *Result) error {
	blob, err := json.Marshal(result)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "序列化求解结果失败")
	}
	query := `UPDATE compiler_jobs SET status = $1, result = $2, updated_at = $3 WHERE id = $4`
	res, err := p.db.ExecContext(ctx, query, StatusDone, blob, time.Now(), id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "写入求解结果失败")
	}
	return checkRowsAffected(res, id)
}

// SetFailed marks the job failed with the given message.
func (p *Postgres) SetFailed(ctx context.Context, id string, message string) error {
	query := `UPDATE compiler_jobs SET status = $1, message = $2, updated_at = $3 WHERE id = $4`
	res, err := p.db.ExecContext(ctx, query, StatusFailed, message, time.Now(), id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "写入失败原因失败")
	}
	return checkRowsAffected(res, id)
}

// Get fetches a job by id.
func (p *Postgres) Get(ctx context.Context, id string) (*Job, error) {
	query := `
		SELECT id, status, bound, result, message, created_at, updated_at
		FROM compiler_jobs
		WHERE id = $1
	`
	row := p.db.QueryRowContext(ctx, query, id)

	var (
		j        Job
		bound    sql.NullInt64
		blob     []byte
		message  sql.NullString
	)
	if err := row.Scan(&j.ID, &j.Status, &bound, &blob, &message, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("job", id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "查询任务记录失败")
	}
	if bound.Valid {
		j.Bound = &bound.Int64
	}
	if message.Valid {
		j.Message = message.String
	}
	if len(blob) > 0 {
		var result Result
		if err := json.Unmarshal(blob, &result); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "反序列化求解结果失败")
		}
		j.Result = &result
	}
	return &j, nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "读取受影响行数失败")
	}
	if n == 0 {
		return apperrors.NotFound("job", id)
	}
	return nil
}
