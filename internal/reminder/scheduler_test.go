package reminder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantkeeper/internal/common"
	"plantkeeper/internal/logging"
	"plantkeeper/internal/models"
	"plantkeeper/internal/storage"
)

// stubNotifier records calls and lets tests force failures.
type stubNotifier struct {
	granted     bool
	permErr     error
	scheduleErr error
	cancelErr   error

	scheduled []Trigger
	contents  []Content
	canceled  []string
	nextID    int
}

func (n *stubNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return n.granted, n.permErr
}

func (n *stubNotifier) Schedule(ctx context.Context, content Content, trigger Trigger) (string, error) {
	if n.scheduleErr != nil {
		return "", n.scheduleErr
	}
	n.nextID++
	n.scheduled = append(n.scheduled, trigger)
	n.contents = append(n.contents, content)
	return fmt.Sprintf("notif-%d", n.nextID), nil
}

func (n *stubNotifier) Cancel(ctx context.Context, id string) error {
	n.canceled = append(n.canceled, id)
	return n.cancelErr
}

func newTestScheduler(t *testing.T) (*Scheduler, *stubNotifier, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	notifier := &stubNotifier{granted: true}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewScheduler(kv, notifier, log)
	return s, notifier, kv
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestSet_RoundTripWithCheckAndCancel(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "42", 3, models.UnitDays, at(9, 30), "Monstera")
	require.NoError(t, err)

	sched, err := s.Check(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, sched)
	assert.Equal(t, 3, sched.Interval)
	assert.Equal(t, models.UnitDays, sched.TimeUnit)
	assert.NotEmpty(t, sched.NotificationID)

	removed, err := s.Cancel(ctx, "42")
	require.NoError(t, err)
	assert.True(t, removed)

	sched, err = s.Check(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, sched)

	removed, err = s.Cancel(ctx, "42")
	require.NoError(t, err)
	assert.False(t, removed, "second cancel finds nothing")
}

func TestSet_ValidatesIntervalBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		unit     models.TimeUnit
		wantErr  error
	}{
		{"minutes max ok", 59, models.UnitMinutes, nil},
		{"minutes above max", 60, models.UnitMinutes, common.ErrIntervalOutOfRange},
		{"zero rejected", 0, models.UnitMinutes, common.ErrIntervalOutOfRange},
		{"hours max ok", 23, models.UnitHours, nil},
		{"hours above max", 24, models.UnitHours, common.ErrIntervalOutOfRange},
		{"days max ok", 31, models.UnitDays, nil},
		{"days above max", 32, models.UnitDays, common.ErrIntervalOutOfRange},
		{"weeks max ok", 52, models.UnitWeeks, nil},
		{"weeks above max", 53, models.UnitWeeks, common.ErrIntervalOutOfRange},
		{"unknown unit", 1, models.TimeUnit("fortnights"), common.ErrUnknownTimeUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, kv := newTestScheduler(t)
			ctx := context.Background()

			_, err := s.Set(ctx, "1", tt.interval, tt.unit, at(9, 0), "Fern")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				_, ok, kvErr := kv.Get(ctx, "reminder_1")
				require.NoError(t, kvErr)
				assert.False(t, ok, "rejected set must not write state")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSet_ReplacesExistingAndCancelsOldNotification(t *testing.T) {
	s, notifier, _ := newTestScheduler(t)
	ctx := context.Background()

	first, err := s.Set(ctx, "42", 1, models.UnitDays, at(9, 0), "Monstera")
	require.NoError(t, err)
	_, err = s.Set(ctx, "42", 2, models.UnitWeeks, at(18, 0), "Monstera")
	require.NoError(t, err)

	assert.Equal(t, []string{first.NotificationID}, notifier.canceled)

	sched, err := s.Check(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, sched)
	assert.Equal(t, 2, sched.Interval)
	assert.Equal(t, models.UnitWeeks, sched.TimeUnit)
	assert.NotEqual(t, first.NotificationID, sched.NotificationID)
}

func TestSet_SwallowsCancelFailureOfPreviousTrigger(t *testing.T) {
	s, notifier, _ := newTestScheduler(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "42", 1, models.UnitDays, at(9, 0), "Monstera")
	require.NoError(t, err)

	notifier.cancelErr = errors.New("platform says no")
	_, err = s.Set(ctx, "42", 5, models.UnitDays, at(9, 0), "Monstera")
	require.NoError(t, err, "cancel failure must not block the new schedule")

	sched, err := s.Check(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, sched)
	assert.Equal(t, 5, sched.Interval)
}

func TestSet_PermissionDenied(t *testing.T) {
	s, notifier, kv := newTestScheduler(t)
	notifier.granted = false
	ctx := context.Background()

	_, err := s.Set(ctx, "42", 1, models.UnitDays, at(9, 0), "Monstera")
	require.ErrorIs(t, err, common.ErrPermissionDenied)

	_, ok, err := kv.Get(ctx, "reminder_42")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSet_NotificationContentNamesThePlant(t *testing.T) {
	s, notifier, _ := newTestScheduler(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "42", 1, models.UnitDays, at(9, 0), "Monstera")
	require.NoError(t, err)

	require.Len(t, notifier.contents, 1)
	assert.Equal(t, "Time to water Monstera!", notifier.contents[0].Title)
	assert.Equal(t, "42", notifier.contents[0].PlantID)
}

func TestSet_TriggerShapePerUnit(t *testing.T) {
	s, notifier, _ := newTestScheduler(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "a", 15, models.UnitMinutes, at(9, 0), "Fern")
	require.NoError(t, err)
	_, err = s.Set(ctx, "b", 6, models.UnitHours, at(9, 0), "Fern")
	require.NoError(t, err)
	_, err = s.Set(ctx, "c", 3, models.UnitDays, at(9, 15), "Fern")
	require.NoError(t, err)
	_, err = s.Set(ctx, "d", 2, models.UnitWeeks, at(9, 15), "Fern")
	require.NoError(t, err)

	require.Len(t, notifier.scheduled, 4)
	assert.Equal(t, Trigger{Kind: TriggerEvery, Every: 15 * time.Minute}, notifier.scheduled[0])
	assert.Equal(t, Trigger{Kind: TriggerEvery, Every: 6 * time.Hour}, notifier.scheduled[1])
	assert.Equal(t, TriggerDaily, notifier.scheduled[2].Kind)
	assert.Equal(t, 9, notifier.scheduled[2].Hour)
	assert.Equal(t, 15, notifier.scheduled[2].Minute)
	assert.Equal(t, TriggerWeekly, notifier.scheduled[3].Kind)
}

func TestCheck_CorruptEntryIsHealedAndReportedAbsent(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json at all", "not-json"},
		{"quoted string", `"not-json"`},
		{"json null", `null`},
		{"array", `[1,2,3]`},
		{"bare number", `5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, kv := newTestScheduler(t)
			ctx := context.Background()

			require.NoError(t, kv.Set(ctx, "reminder_42", tt.blob))

			sched, err := s.Check(ctx, "42")
			require.NoError(t, err)
			assert.Nil(t, sched, "a blob without object shape is not a schedule")

			_, ok, err := kv.Get(ctx, "reminder_42")
			require.NoError(t, err)
			assert.False(t, ok, "corrupt entry must be removed as a side effect")
		})
	}
}

func TestCheck_AppliesDefaultsForMissingSubfields(t *testing.T) {
	s, _, kv := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "reminder_42", `{"notificationId":"n1"}`))

	sched, err := s.Check(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, sched)
	assert.Equal(t, 1, sched.Interval)
	assert.Equal(t, models.UnitDays, sched.TimeUnit)
	assert.Equal(t, "n1", sched.NotificationID)
}

func TestCleanup_RemovesOnlyMalformedScheduleEntries(t *testing.T) {
	s, _, kv := newTestScheduler(t)
	ctx := context.Background()

	_, err := s.Set(ctx, "good", 1, models.UnitDays, at(9, 0), "Monstera")
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "reminder_bad1", "not-json"))
	require.NoError(t, kv.Set(ctx, "reminder_bad2", `[1,2,3]`))
	require.NoError(t, kv.Set(ctx, "reminder_bad3", `null`))
	require.NoError(t, kv.Set(ctx, "reminder_bad4", `7`))
	require.NoError(t, kv.Set(ctx, "plants", "also-not-json")) // not a schedule key

	removed, err := s.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	keys, err := kv.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"reminder_good", "plants"}, keys)
}

func TestNextNotification(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		timeOfDay time.Time
		interval  int
		unit      models.TimeUnit
		want      time.Time
	}{
		{
			name:      "time already passed, days",
			timeOfDay: at(9, 0),
			interval:  1,
			unit:      models.UnitDays,
			want:      time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "time not yet passed, same day",
			timeOfDay: at(11, 0),
			interval:  1,
			unit:      models.UnitDays,
			want:      time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly now counts as not passed",
			timeOfDay: at(10, 0),
			interval:  1,
			unit:      models.UnitDays,
			want:      now,
		},
		{
			name:      "weeks advance by seven days per interval",
			timeOfDay: at(9, 0),
			interval:  2,
			unit:      models.UnitWeeks,
			want:      time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "minutes advance from the target time",
			timeOfDay: at(9, 30),
			interval:  45,
			unit:      models.UnitMinutes,
			want:      time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC),
		},
		{
			name:      "hours advance from the target time",
			timeOfDay: at(8, 0),
			interval:  6,
			unit:      models.UnitHours,
			want:      time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextNotification(now, tt.timeOfDay, tt.interval, tt.unit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_PersistsComputedNextNotification(t *testing.T) {
	s, _, _ := newTestScheduler(t)
	ctx := context.Background()
	s.now = func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) }

	sched, err := s.Set(ctx, "42", 1, models.UnitDays, at(9, 0), "Monstera")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), sched.NextNotification)

	stored, err := s.Check(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, sched.NextNotification.Equal(stored.NextNotification))
}
