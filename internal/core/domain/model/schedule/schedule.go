// Package schedule contains the Schedule aggregate: a recurring task
// definition fired by the scheduler process on a cron cadence.
package schedule

import (
	"errors"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// ErrScheduleIsNotConstructed is returned when a Schedule was not created
// through NewSchedule or RestoreSchedule.
var ErrScheduleIsNotConstructed = errors.New(
	"Schedule must be created via NewSchedule or RestoreSchedule constructor")

// Schedule is the aggregate root for a recurring task.
// Each firing enqueues a fresh task with the schedule's handler name,
// resource, and payload. The cron expression uses the standard five-field
// format ("*/5 * * * *" fires every five minutes).
type Schedule struct {
	id         kernel.UUID
	name       string
	taskName   string
	resource   *kernel.ResourceName
	payload    []byte
	cronExpr   string
	enabled    bool
	lastRunAt  *time.Time
	nextRunAt  time.Time
	cronSched  cron.Schedule
	maxRetries int

	isConstructed bool
}

// NewSchedule creates an enabled schedule whose first firing is the next
// cron occurrence after now.
func NewSchedule(
	id kernel.UUID,
	name string,
	taskName string,
	resource *kernel.ResourceName,
	payload []byte,
	cronExpr string,
	maxRetries int,
	now time.Time,
) (*Schedule, error) {
	s := &Schedule{
		payload:       payload,
		enabled:       true,
		maxRetries:    maxRetries,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setNames(name, taskName),
		s.setResource(resource),
		s.setCronExpr(cronExpr),
	); err != nil {
		return nil, err
	}

	s.nextRunAt = s.cronSched.Next(now.UTC())
	return s, nil
}

// RestoreSchedule reconstructs a schedule from persistence, re-parsing the
// stored cron expression.
func RestoreSchedule(
	id kernel.UUID,
	name string,
	taskName string,
	resource *kernel.ResourceName,
	payload []byte,
	cronExpr string,
	maxRetries int,
	enabled bool,
	lastRunAt *time.Time,
	nextRunAt time.Time,
) (*Schedule, error) {
	s := &Schedule{
		payload:       payload,
		enabled:       enabled,
		maxRetries:    maxRetries,
		lastRunAt:     lastRunAt,
		nextRunAt:     nextRunAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setNames(name, taskName),
		s.setResource(resource),
		s.setCronExpr(cronExpr),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Schedule was properly constructed.
func (s *Schedule) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrScheduleIsNotConstructed
	}
	return nil
}

// ID returns the schedule's unique identifier.
func (s *Schedule) ID() kernel.UUID {
	return s.id
}

// Name returns the schedule's unique name.
func (s *Schedule) Name() string {
	return s.name
}

// TaskName returns the handler name of the tasks this schedule enqueues.
func (s *Schedule) TaskName() string {
	return s.taskName
}

// Resource returns the resource constraint applied to enqueued tasks, or
// nil.
func (s *Schedule) Resource() *kernel.ResourceName {
	return s.resource
}

// Payload returns the payload passed to every enqueued task.
func (s *Schedule) Payload() []byte {
	return s.payload
}

// CronExpr returns the schedule's cron expression.
func (s *Schedule) CronExpr() string {
	return s.cronExpr
}

// MaxRetries returns the retry budget applied to enqueued tasks.
func (s *Schedule) MaxRetries() int {
	return s.maxRetries
}

// Enabled reports whether the scheduler fires this schedule.
func (s *Schedule) Enabled() bool {
	return s.enabled
}

// LastRunAt returns the time of the most recent firing, or nil.
func (s *Schedule) LastRunAt() *time.Time {
	return s.lastRunAt
}

// NextRunAt returns when the schedule is next due.
func (s *Schedule) NextRunAt() time.Time {
	return s.nextRunAt
}

// IsDue reports whether the schedule should fire at now.
func (s *Schedule) IsDue(now time.Time) bool {
	return s.enabled && !now.UTC().Before(s.nextRunAt)
}

// MarkFired records a firing at now and advances NextRunAt to the next
// cron occurrence. Missed occurrences are skipped, not replayed: the next
// run is always computed from now, exactly once per firing.
func (s *Schedule) MarkFired(now time.Time) {
	fired := now.UTC()
	s.lastRunAt = &fired
	s.nextRunAt = s.cronSched.Next(fired)
}

// Disable stops the scheduler from firing this schedule.
func (s *Schedule) Disable() {
	s.enabled = false
}

// Enable resumes firing, with the next run computed from now.
func (s *Schedule) Enable(now time.Time) {
	s.enabled = true
	s.nextRunAt = s.cronSched.Next(now.UTC())
}

func (s *Schedule) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Schedule) setNames(name, taskName string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if taskName == "" {
		return errs.NewValueIsRequiredError("taskName")
	}
	s.name = name
	s.taskName = taskName
	return nil
}

func (s *Schedule) setResource(resource *kernel.ResourceName) error {
	if resource == nil {
		return nil
	}
	if err := resource.Validate(); err != nil {
		return err
	}
	s.resource = resource
	return nil
}

func (s *Schedule) setCronExpr(cronExpr string) error {
	if cronExpr == "" {
		return errs.NewValueIsRequiredError("cronExpr")
	}
	parsed, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("cronExpr", err)
	}
	s.cronExpr = cronExpr
	s.cronSched = parsed
	return nil
}
