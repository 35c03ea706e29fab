package commands

import "errors"

// ErrTaskNotFound is returned when the referenced task does not exist.
// For broker-driven handlers this usually means the enqueuing transaction
// rolled back after its envelope escaped; consumers acknowledge the
// message instead of retrying it forever.
var ErrTaskNotFound = errors.New("task not found")

// ErrTaskAlreadySettled is returned when a command arrives for a task that
// already reached a final status. Happens on duplicate deliveries; the
// consumer acknowledges and moves on.
var ErrTaskAlreadySettled = errors.New("task already reached a final status")

// ErrTaskAlreadyStarted is returned by the start command when the task is
// already Running and assigned to the reporting worker. This is a
// redelivery of a task whose previous run died with its worker process;
// the worker executes the task again instead of refusing the message.
var ErrTaskAlreadyStarted = errors.New("task is already running on this worker")

// ErrWorkerNotFound is returned when the referenced worker does not exist.
var ErrWorkerNotFound = errors.New("worker not found")

// ErrTaskWorkerMismatch is returned when a worker reports progress on a
// task that is assigned to a different worker.
var ErrTaskWorkerMismatch = errors.New("task is assigned to a different worker")

// ErrNoSchedulesDue is returned by the schedule firing command when no
// enabled schedule has reached its next run time.
var ErrNoSchedulesDue = errors.New("no schedules are due")
