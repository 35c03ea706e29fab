package queries

import (
	"context"
	"database/sql"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTaskQueryHandler reads a single task row directly from the database.
type GetTaskQueryHandler struct {
	db *gorm.DB
}

// NewGetTaskQueryHandler creates a handler for task status queries.
// Requires a GORM database connection for query execution.
func NewGetTaskQueryHandler(db *gorm.DB) GetTaskQueryHandler {
	return GetTaskQueryHandler{db: db}
}

// Handle executes the query. Returns an error wrapping
// errs.ErrObjectNotFound when the task does not exist.
func (h GetTaskQueryHandler) Handle(
	ctx context.Context,
	query GetTaskQuery,
) (GetTaskQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTaskQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			resource,
			status,
			worker_id,
			attempts,
			max_retries,
			payload,
			result,
			failure,
			enqueued_at,
			started_at,
			finished_at
		FROM tasks
		WHERE id = ?
	`, query.taskID.Bytes()).Rows()
	if err != nil {
		return GetTaskQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetTaskQueryResponse{}, err
		}
		return GetTaskQueryResponse{}, errs.NewObjectNotFoundError("task", query.taskID)
	}

	var (
		response   GetTaskQueryResponse
		id         uuid.UUID
		resource   sql.NullString
		status     int
		workerID   uuid.NullUUID
		startedAt  sql.NullTime
		finishedAt sql.NullTime
	)

	err = rows.Scan(
		&id,
		&response.Name,
		&resource,
		&status,
		&workerID,
		&response.Attempts,
		&response.MaxRetries,
		&response.Payload,
		&response.Result,
		&response.Failure,
		&response.EnqueuedAt,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return GetTaskQueryResponse{}, err
	}

	taskID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTaskQueryResponse{}, err
	}
	response.ID = taskID
	response.Resource = resource.String
	response.Status = task.Status(status).String()

	if workerID.Valid {
		wID, wErr := kernel.UUIDFromBytes(workerID.UUID[:])
		if wErr != nil {
			return GetTaskQueryResponse{}, wErr
		}
		response.WorkerID = &wID
	}
	response.StartedAt = nullableTime(startedAt)
	response.FinishedAt = nullableTime(finishedAt)

	return response, rows.Err()
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
