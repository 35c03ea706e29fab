package queries

import (
	"context"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllWorkersQueryHandler retrieves all worker rows from the database.
type GetAllWorkersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllWorkersQueryHandler creates a handler for worker fleet
// queries.
func NewGetAllWorkersQueryHandler(db *gorm.DB) GetAllWorkersQueryHandler {
	return GetAllWorkersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by name for stable
// output.
func (h GetAllWorkersQueryHandler) Handle(
	ctx context.Context,
	query GetAllWorkersQuery,
) ([]GetAllWorkersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	workers := make([]GetAllWorkersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			last_heartbeat
		FROM workers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			response GetAllWorkersQueryResponse
			id       uuid.UUID
			status   int
		)

		err = rows.Scan(
			&id,
			&response.Name,
			&status,
			&response.LastHeartbeat,
		)
		if err != nil {
			return nil, err
		}

		workerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = workerID
		response.Status = worker.Status(status).String()

		workers = append(workers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}
