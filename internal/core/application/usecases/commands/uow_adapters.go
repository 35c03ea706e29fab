package commands

import (
	"tasking/internal/core/ports"
)

// Adapters narrowing a full unit of work factory to the per-command views.
// Handlers declare the smallest repository surface they touch; the
// composition root wires them all from one ports.UnitOfWorkFactory.

// NewTaskUoWFactory adapts factory to the task-only view.
func NewTaskUoWFactory(factory ports.UnitOfWorkFactory) TaskUoWFactory {
	return taskUoWFactory{factory: factory}
}

type taskUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f taskUoWFactory) Create() TaskUoW {
	return f.factory.Create()
}

// NewWorkerUoWFactory adapts factory to the worker-only view.
func NewWorkerUoWFactory(factory ports.UnitOfWorkFactory) WorkerUoWFactory {
	return workerUoWFactory{factory: factory}
}

type workerUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f workerUoWFactory) Create() WorkerUoW {
	return f.factory.Create()
}

// NewScheduleUoWFactory adapts factory to the schedule view.
func NewScheduleUoWFactory(factory ports.UnitOfWorkFactory) ScheduleUoWFactory {
	return scheduleUoWFactory{factory: factory}
}

type scheduleUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f scheduleUoWFactory) Create() ScheduleUoW {
	return f.factory.Create()
}

// NewUoWFactory adapts factory to the cross-aggregate view.
func NewUoWFactory(factory ports.UnitOfWorkFactory) UoWFactory {
	return uowFactory{factory: factory}
}

type uowFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f uowFactory) Create() UoW {
	return f.factory.Create()
}
