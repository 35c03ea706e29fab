package schedule_test

import (
	"testing"
	"time"

	"tasking/internal/core/domain/model/kernel"
	"tasking/internal/core/domain/model/schedule"
	"tasking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHourlySchedule(t *testing.T, now time.Time) *schedule.Schedule {
	t.Helper()
	resource, err := kernel.NewResourceName("repository", "zoo")
	require.NoError(t, err)
	s, err := schedule.NewSchedule(
		kernel.NewUUID(),
		"nightly-sync",
		"repository.sync",
		&resource,
		[]byte(`{"full":false}`),
		"0 * * * *",
		3,
		now,
	)
	require.NoError(t, err)
	return s
}

func TestNewSchedule(t *testing.T) {
	t.Run("creates_enabled_schedule_with_next_run", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
		s := newHourlySchedule(t, now)

		require.NoError(t, s.Validate())
		assert.True(t, s.Enabled())
		assert.Nil(t, s.LastRunAt())
		assert.Equal(t, time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC), s.NextRunAt())
		assert.Equal(t, 3, s.MaxRetries())
	})

	t.Run("rejects_invalid_cron_expression", func(t *testing.T) {
		_, err := schedule.NewSchedule(
			kernel.NewUUID(), "bad", "repository.sync", nil, nil, "not a cron", 0, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_empty_names", func(t *testing.T) {
		_, err := schedule.NewSchedule(
			kernel.NewUUID(), "", "repository.sync", nil, nil, "0 * * * *", 0, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = schedule.NewSchedule(
			kernel.NewUUID(), "nightly-sync", "", nil, nil, "0 * * * *", 0, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestSchedule_IsDueAndMarkFired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	s := newHourlySchedule(t, now)

	assert.False(t, s.IsDue(now))
	due := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	assert.True(t, s.IsDue(due))

	s.MarkFired(due)

	require.NotNil(t, s.LastRunAt())
	assert.Equal(t, due, *s.LastRunAt())
	assert.Equal(t, time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC), s.NextRunAt())
	assert.False(t, s.IsDue(due))
}

func TestSchedule_MarkFired_SkipsMissedRuns(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	s := newHourlySchedule(t, now)

	// scheduler was down for three hours; only one firing happens
	late := time.Date(2025, 6, 1, 16, 10, 0, 0, time.UTC)
	require.True(t, s.IsDue(late))
	s.MarkFired(late)

	assert.Equal(t, time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC), s.NextRunAt())
}

func TestSchedule_EnableDisable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	s := newHourlySchedule(t, now)

	s.Disable()
	assert.False(t, s.Enabled())
	assert.False(t, s.IsDue(now.Add(24*time.Hour)))

	resumed := time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)
	s.Enable(resumed)
	assert.True(t, s.Enabled())
	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), s.NextRunAt())
}

func TestRestoreSchedule(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	original := newHourlySchedule(t, now)
	original.MarkFired(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC))

	restored, err := schedule.RestoreSchedule(
		original.ID(),
		original.Name(),
		original.TaskName(),
		original.Resource(),
		original.Payload(),
		original.CronExpr(),
		original.MaxRetries(),
		original.Enabled(),
		original.LastRunAt(),
		original.NextRunAt(),
	)

	require.NoError(t, err)
	assert.Equal(t, original.NextRunAt(), restored.NextRunAt())
	assert.Equal(t, original.CronExpr(), restored.CronExpr())

	// restored schedules keep advancing on the same cadence
	restored.MarkFired(restored.NextRunAt())
	assert.Equal(t, time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC), restored.NextRunAt())
}

func TestSchedule_Validate(t *testing.T) {
	var s schedule.Schedule
	require.ErrorIs(t, s.Validate(), schedule.ErrScheduleIsNotConstructed)
}
