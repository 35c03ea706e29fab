package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tasking/internal/core/application/usecases/commands"
	"tasking/internal/core/application/usecases/queries"
	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/ports"
)

// ErrWorkerNotRegistered is returned by Run when the worker has not
// announced itself yet.
var ErrWorkerNotRegistered = errors.New("worker must be registered before running")

// reportRetryDelay backs off the consume loop after an outcome report
// fails, so the redelivered message is not spun through a broken database
// connection at full speed.
const reportRetryDelay = time.Second

// TaskReader loads the stored payload of a task for execution.
type TaskReader interface {
	Handle(ctx context.Context, query queries.GetTaskQuery) (queries.GetTaskQueryResponse, error)
}

// Worker is one execution replica. It registers under its unique name,
// consumes its own queue, and reports every task transition back through
// the command handlers, so the database stays the source of truth for
// task state.
type Worker struct {
	name     string
	id       kernel.UUID
	consumer ports.TaskConsumer
	registry *Registry

	registerHandler commands.RegisterWorkerCommandHandler
	startHandler    commands.StartTaskCommandHandler
	completeHandler commands.CompleteTaskCommandHandler
	failHandler     commands.FailTaskCommandHandler
	taskQuery       TaskReader

	logger *slog.Logger
}

// NewWorker creates an execution replica with the given unique name.
func NewWorker(
	name string,
	consumer ports.TaskConsumer,
	registry *Registry,
	registerHandler commands.RegisterWorkerCommandHandler,
	startHandler commands.StartTaskCommandHandler,
	completeHandler commands.CompleteTaskCommandHandler,
	failHandler commands.FailTaskCommandHandler,
	taskQuery TaskReader,
	logger *slog.Logger,
) *Worker {
	return &Worker{
		name:            name,
		consumer:        consumer,
		registry:        registry,
		registerHandler: registerHandler,
		startHandler:    startHandler,
		completeHandler: completeHandler,
		failHandler:     failHandler,
		taskQuery:       taskQuery,
		logger:          logger.With("component", "worker", "worker_name", name),
	}
}

// ID returns the worker's registered identifier. Valid after Register.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Register announces the worker. A replica restarting under the same
// name reclaims its existing identifier and queue.
func (w *Worker) Register(ctx context.Context) error {
	cmd, err := commands.NewRegisterWorkerCommand(w.name)
	if err != nil {
		return err
	}

	id, err := w.registerHandler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	w.id = id
	w.logger.InfoContext(ctx, "Worker registered", "worker_id", id.String())
	return nil
}

// Run consumes the worker's queue until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.id.Validate(); err != nil {
		return ErrWorkerNotRegistered
	}

	queue, err := kernel.NewWorkerQueueName(w.name)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Worker started", "queue", string(queue))

	for {
		msg, consumeErr := w.consumer.Consume(ctx, queue)
		if consumeErr != nil {
			if ctx.Err() != nil {
				w.logger.InfoContext(ctx, "Worker stopped")
				return ctx.Err()
			}
			return consumeErr
		}

		w.execute(ctx, msg)
	}
}

// execute runs one delivered task through its lifecycle: start report,
// handler invocation, then completion or failure report.
//
// The message is acknowledged only after the outcome is committed. When a
// report fails the message is nack-requeued instead; the redelivery finds
// the task Running on this worker, executes it again, and reports again.
// At-least-once delivery already allows re-execution, so holding the
// message until the database accepts the outcome costs nothing.
func (w *Worker) execute(ctx context.Context, msg ports.TaskMessage) {
	envelope := msg.Envelope()

	taskID, err := envelope.ParseTaskID()
	if err != nil {
		w.logger.ErrorContext(ctx, "Dropping envelope with invalid task id", "task_id", envelope.TaskID, "error", err)
		_ = msg.Nack(false)
		return
	}

	if started, startErr := w.start(ctx, taskID); !started {
		if startErr != nil {
			w.logger.ErrorContext(ctx, "Start report failed, requeueing", "task_id", envelope.TaskID, "error", startErr)
			_ = msg.Nack(true)
			w.pause(ctx)
			return
		}
		// Canceled, reassigned, or duplicate delivery.
		w.logger.InfoContext(ctx, "Skipping task", "task_id", envelope.TaskID)
		_ = msg.Ack()
		return
	}

	result, runErr := w.run(ctx, taskID, envelope.Name)

	var reportErr error
	if runErr != nil {
		reportErr = w.reportFailure(ctx, taskID, runErr)
	} else {
		reportErr = w.reportCompletion(ctx, taskID, result)
	}
	if reportErr != nil {
		w.logger.ErrorContext(ctx, "Outcome report failed, requeueing", "task_id", envelope.TaskID, "error", reportErr)
		_ = msg.Nack(true)
		w.pause(ctx)
		return
	}

	_ = msg.Ack()
}

// start reports the Running transition. Returns started=false with a nil
// error when the task should be skipped rather than retried. A task found
// already Running on this worker is a redelivery after a crash-restart and
// is executed again.
func (w *Worker) start(ctx context.Context, taskID kernel.UUID) (bool, error) {
	cmd, err := commands.NewStartTaskCommand(taskID, w.id)
	if err != nil {
		return false, err
	}

	err = w.startHandler.Handle(ctx, cmd)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, commands.ErrTaskAlreadyStarted):
		w.logger.InfoContext(ctx, "Resuming redelivered task", "task_id", taskID.String())
		return true, nil
	case errors.Is(err, commands.ErrTaskNotFound),
		errors.Is(err, commands.ErrTaskAlreadySettled),
		errors.Is(err, commands.ErrTaskWorkerMismatch):
		return false, nil
	default:
		return false, err
	}
}

// run loads the task payload and invokes the registered handler.
func (w *Worker) run(ctx context.Context, taskID kernel.UUID, name string) ([]byte, error) {
	query, err := queries.NewGetTaskQuery(taskID)
	if err != nil {
		return nil, err
	}

	loaded, err := w.taskQuery.Handle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load task payload: %w", err)
	}

	handler, ok := w.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("no handler registered for task %q", name)
	}

	return handler(ctx, loaded.Payload)
}

func (w *Worker) reportCompletion(ctx context.Context, taskID kernel.UUID, result []byte) error {
	cmd, err := commands.NewCompleteTaskCommand(taskID, w.id, result)
	if err == nil {
		err = w.completeHandler.Handle(ctx, cmd)
	}
	return settleReportError(err)
}

func (w *Worker) reportFailure(ctx context.Context, taskID kernel.UUID, taskErr error) error {
	w.logger.WarnContext(ctx, "Task failed", "task_id", taskID.String(), "error", taskErr)

	cmd, err := commands.NewFailTaskCommand(taskID, w.id, taskErr.Error())
	if err == nil {
		err = w.failHandler.Handle(ctx, cmd)
	}
	return settleReportError(err)
}

// settleReportError filters outcome-report errors that mean the task no
// longer needs this worker's result, such as a duplicate report that
// already settled it or a reaper reassignment. Those deliveries are done;
// anything else is transient and worth a redelivery.
func settleReportError(err error) error {
	switch {
	case err == nil,
		errors.Is(err, commands.ErrTaskAlreadySettled),
		errors.Is(err, commands.ErrTaskWorkerMismatch),
		errors.Is(err, commands.ErrTaskNotFound):
		return nil
	default:
		return err
	}
}

func (w *Worker) pause(ctx context.Context) {
	select {
	case <-time.After(reportRetryDelay):
	case <-ctx.Done():
	}
}
