package queries

import (
	"context"
	"database/sql"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnfinishedTasksQueryHandler retrieves the active workload from the
// database, oldest first.
type GetUnfinishedTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetUnfinishedTasksQueryHandler creates a handler for workload
// queries.
func NewGetUnfinishedTasksQueryHandler(db *gorm.DB) GetUnfinishedTasksQueryHandler {
	return GetUnfinishedTasksQueryHandler{db: db}
}

// Handle executes the query. Returns tasks in Waiting, Dispatched, and
// Running status ordered by submission time.
func (h GetUnfinishedTasksQueryHandler) Handle(
	ctx context.Context,
	query GetUnfinishedTasksQuery,
) ([]GetUnfinishedTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]GetUnfinishedTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			resource,
			status,
			worker_id,
			attempts,
			max_retries,
			enqueued_at
		FROM tasks
		WHERE status IN (?, ?, ?)
		ORDER BY enqueued_at
	`, task.Waiting, task.Dispatched, task.Running).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			response GetUnfinishedTasksQueryResponse
			id       uuid.UUID
			resource sql.NullString
			status   int
			workerID uuid.NullUUID
		)

		err = rows.Scan(
			&id,
			&response.Name,
			&resource,
			&status,
			&workerID,
			&response.Attempts,
			&response.MaxRetries,
			&response.EnqueuedAt,
		)
		if err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = taskID
		response.Resource = resource.String
		response.Status = task.Status(status).String()

		if workerID.Valid {
			wID, wErr := kernel.UUIDFromBytes(workerID.UUID[:])
			if wErr != nil {
				return nil, wErr
			}
			response.WorkerID = &wID
		}

		tasks = append(tasks, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
