package commands_test

import (
	"context"
	"time"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/reservation"
	"tasking/internal/core/domain/model/task"
	"tasking/internal/core/domain/model/worker"
	"tasking/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared mocks for the handlers built on the cross-aggregate unit of work
// (dispatch, complete, fail, cancel, reap).

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetAllInStatus(ctx context.Context, status task.Status) ([]*task.Task, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetAllUnfinishedByWorker(ctx context.Context, workerID kernel.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, aggregate *worker.Worker) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkerRepository) Update(ctx context.Context, aggregate *worker.Worker) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetByName(ctx context.Context, name string) (*worker.Worker, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetAllOnline(ctx context.Context) ([]*worker.Worker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetAllStale(ctx context.Context, cutoff time.Time) ([]*worker.Worker, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*worker.Worker), args.Error(1)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Add(ctx context.Context, aggregate *reservation.Reservation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, aggregate *reservation.Reservation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReservationRepository) Get(ctx context.Context, resource kernel.ResourceName) (*reservation.Reservation, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, resource kernel.ResourceName) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockReservationRepository) GetAll(ctx context.Context) ([]*reservation.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetAllByWorker(ctx context.Context, workerID kernel.UUID) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) ReservationRepository() ports.ReservationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReservationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTaskPublisher struct{ mock.Mock }

func (m *MockTaskPublisher) Publish(ctx context.Context, queue kernel.QueueName, envelope ports.TaskEnvelope) error {
	args := m.Called(ctx, queue, envelope)
	return args.Error(0)
}
