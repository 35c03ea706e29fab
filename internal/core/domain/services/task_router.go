package services

import (
	"errors"
	"sort"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/core/domain/model/worker"
)

var (
	// ErrNoWorkersAvailable is returned when no online worker can accept
	// the task.
	ErrNoWorkersAvailable = errors.New("no workers available")

	// ErrReservationHolderOffline is returned when a task's resource is
	// reserved by a worker that is no longer online. The task must wait
	// until the reaper releases the reservation.
	ErrReservationHolderOffline = errors.New("reservation holder is offline")
)

// TaskRouter is the domain service that picks the worker a task is
// dispatched to.
//
// Routing rules:
//   - a resource-scoped task whose resource is already reserved goes to
//     the reservation holder; this serializes all tasks for a resource
//     onto one worker at a time
//   - any other task goes to the least-loaded online worker, where load is
//     the number of in-flight tasks counted by the worker's reservations;
//     ties break on worker name for deterministic routing
type TaskRouter struct{}

// NewTaskRouter creates a new TaskRouter instance.
func NewTaskRouter() TaskRouter {
	return TaskRouter{}
}

// Route selects the worker for the given task.
//
// Returns ErrNoWorkersAvailable when workers is empty or contains no
// online worker, and ErrReservationHolderOffline when the task's resource
// is reserved by a worker missing from the online set.
func (r TaskRouter) Route(
	t *task.Task,
	reservations []*reservation.Reservation,
	workers []*worker.Worker,
) (*worker.Worker, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	online := make(map[string]*worker.Worker)
	for _, w := range workers {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if w.Status() == worker.Online {
			online[w.ID().String()] = w
		}
	}
	if len(online) == 0 {
		return nil, ErrNoWorkersAvailable
	}

	if resource := t.Resource(); resource != nil {
		if holder, reserved := findHolder(*resource, reservations); reserved {
			w, ok := online[holder.String()]
			if !ok {
				return nil, ErrReservationHolderOffline
			}
			return w, nil
		}
	}

	return leastLoaded(online, reservations), nil
}

func findHolder(resource kernel.ResourceName, reservations []*reservation.Reservation) (kernel.UUID, bool) {
	for _, res := range reservations {
		if res.Resource().IsEqual(resource) {
			return res.Worker(), true
		}
	}
	return kernel.UUID{}, false
}

func leastLoaded(online map[string]*worker.Worker, reservations []*reservation.Reservation) *worker.Worker {
	load := make(map[string]int, len(online))
	for _, res := range reservations {
		load[res.Worker().String()] += res.InFlight()
	}

	candidates := make([]*worker.Worker, 0, len(online))
	for _, w := range online {
		candidates = append(candidates, w)
	}
	sort.Slice(candidates, func(i, j int) bool {
		loadI := load[candidates[i].ID().String()]
		loadJ := load[candidates[j].ID().String()]
		if loadI != loadJ {
			return loadI < loadJ
		}
		return candidates[i].Name() < candidates[j].Name()
	})

	return candidates[0]
}
