// Package reminder computes and persists recurring watering reminders. One
// schedule blob is stored per plant; the underlying notification trigger is
// owned by a Notifier implementation.
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"plantkeeper/internal/common"
	"plantkeeper/internal/logging"
	"plantkeeper/internal/models"
	"plantkeeper/internal/storage"
)

// Schedule blobs live under reminder_<plantId>.
const keyPrefix = "reminder_"

func scheduleKey(plantID string) string {
	return keyPrefix + plantID
}

// decodeSchedule parses a stored schedule blob. Unmarshalling into a pointer
// makes a blob of JSON null come back as nil, which is rejected like any
// other value without object shape (strings, arrays, numbers).
func decodeSchedule(raw string) (*models.ReminderSchedule, error) {
	var sched *models.ReminderSchedule
	if err := json.Unmarshal([]byte(raw), &sched); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, errors.New("schedule is null")
	}
	return sched, nil
}

// intervalRanges holds the allowed repeat count per time unit.
var intervalRanges = map[models.TimeUnit]struct{ Min, Max int }{
	models.UnitMinutes: {1, 59},
	models.UnitHours:   {1, 23},
	models.UnitDays:    {1, 31},
	models.UnitWeeks:   {1, 52},
}

// ValidateInterval checks that interval is within the unit's allowed range.
func ValidateInterval(interval int, unit models.TimeUnit) error {
	r, ok := intervalRanges[unit]
	if !ok {
		return fmt.Errorf("%q: %w", unit, common.ErrUnknownTimeUnit)
	}
	if interval < r.Min || interval > r.Max {
		return fmt.Errorf("%d %s (allowed %d-%d): %w",
			interval, unit, r.Min, r.Max, common.ErrIntervalOutOfRange)
	}
	return nil
}

type Scheduler struct {
	kv       storage.KV
	notifier Notifier
	log      logging.Logger

	now func() time.Time // test seam
}

func NewScheduler(kv storage.KV, notifier Notifier, log logging.Logger) *Scheduler {
	return &Scheduler{kv: kv, notifier: notifier, log: log, now: time.Now}
}

// Set creates or replaces the plant's reminder. An existing underlying
// notification is canceled first; a failed cancel is logged and swallowed so
// the new schedule is written regardless. The returned schedule carries the
// computed next-notification hint.
func (s *Scheduler) Set(ctx context.Context, plantID string, interval int, unit models.TimeUnit, timeOfDay time.Time, plantName string) (models.ReminderSchedule, error) {
	var zero models.ReminderSchedule

	if err := ValidateInterval(interval, unit); err != nil {
		return zero, err
	}

	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		return zero, fmt.Errorf("request permission: %w", err)
	}
	if !granted {
		return zero, common.ErrPermissionDenied
	}

	// best-effort cancellation of any previous trigger for this plant
	if prev := s.readSchedule(ctx, plantID); prev != nil && prev.NotificationID != "" {
		if err := s.notifier.Cancel(ctx, prev.NotificationID); err != nil {
			s.log.Warn(ctx, "failed to cancel previous notification",
				"plant_id", plantID, "notification_id", prev.NotificationID, "error", err)
		}
	}

	now := s.now()
	next := NextNotification(now, timeOfDay, interval, unit)

	notificationID, err := s.notifier.Schedule(ctx, Content{
		Title:   fmt.Sprintf("Time to water %s!", plantName),
		Body:    "Your plant needs some care today.",
		PlantID: plantID,
	}, buildTrigger(interval, unit, timeOfDay, next))
	if err != nil {
		return zero, fmt.Errorf("schedule notification: %w", err)
	}

	sched := models.ReminderSchedule{
		NotificationID:   notificationID,
		Interval:         interval,
		TimeUnit:         unit,
		Time:             timeOfDay,
		NextNotification: next,
	}
	data, err := json.Marshal(sched)
	if err != nil {
		return zero, fmt.Errorf("marshal schedule: %w", err)
	}
	if err := s.kv.Set(ctx, scheduleKey(plantID), string(data)); err != nil {
		return zero, fmt.Errorf("write schedule: %w", err)
	}
	return sched, nil
}

// Cancel removes the plant's reminder. The underlying notification is
// canceled best-effort; its failure never blocks removal of the blob.
// It reports whether a schedule entry existed.
func (s *Scheduler) Cancel(ctx context.Context, plantID string) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, scheduleKey(plantID))
	if err != nil {
		return false, fmt.Errorf("read schedule: %w", err)
	}
	if !ok {
		return false, nil
	}

	if sched, err := decodeSchedule(raw); err == nil && sched.NotificationID != "" {
		if err := s.notifier.Cancel(ctx, sched.NotificationID); err != nil {
			s.log.Warn(ctx, "failed to cancel notification",
				"plant_id", plantID, "notification_id", sched.NotificationID, "error", err)
		}
	}

	if err := s.kv.Remove(ctx, scheduleKey(plantID)); err != nil {
		return false, fmt.Errorf("remove schedule: %w", err)
	}
	return true, nil
}

// Check returns the plant's schedule, or nil when none is set. A blob that
// fails to parse is deleted as a side effect and reported as absent
// (self-healing read). Missing interval/timeUnit sub-fields get the defaults
// 1 and days while the entry stays valid.
func (s *Scheduler) Check(ctx context.Context, plantID string) (*models.ReminderSchedule, error) {
	raw, ok, err := s.kv.Get(ctx, scheduleKey(plantID))
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	if !ok {
		return nil, nil
	}

	sched, err := decodeSchedule(raw)
	if err != nil {
		s.log.Warn(ctx, "removing corrupt schedule entry", "plant_id", plantID, "error", err)
		if rmErr := s.kv.Remove(ctx, scheduleKey(plantID)); rmErr != nil {
			return nil, fmt.Errorf("remove corrupt schedule: %w", rmErr)
		}
		return nil, nil
	}

	if sched.Interval == 0 {
		sched.Interval = 1
	}
	if sched.TimeUnit == "" {
		sched.TimeUnit = models.UnitDays
	}
	return sched, nil
}

// Cleanup scans all schedule keys and removes entries that fail to parse.
// Intended to run opportunistically, e.g. at application start. It returns
// the number of entries removed.
func (s *Scheduler) Cleanup(ctx context.Context) (int, error) {
	keys, err := s.kv.ListKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}

	var bad []string
	for _, key := range keys {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if _, err := decodeSchedule(raw); err != nil {
			bad = append(bad, key)
		}
	}

	if len(bad) > 0 {
		if err := s.kv.RemoveMany(ctx, bad); err != nil {
			return 0, fmt.Errorf("remove malformed schedules: %w", err)
		}
		s.log.Info(ctx, "removed malformed schedule entries", "count", len(bad))
	}
	return len(bad), nil
}

// readSchedule is the non-healing read used internally by Set.
func (s *Scheduler) readSchedule(ctx context.Context, plantID string) *models.ReminderSchedule {
	raw, ok, err := s.kv.Get(ctx, scheduleKey(plantID))
	if err != nil || !ok {
		return nil
	}
	sched, err := decodeSchedule(raw)
	if err != nil {
		return nil
	}
	return sched
}

// NextNotification computes the displayable next fire time: today at the
// requested hour/minute, or, when that moment has already passed, one
// interval later in the given unit (weeks advance by interval*7 days).
// This is a one-shot hint; it is not re-derived after actual firings.
func NextNotification(now, timeOfDay time.Time, interval int, unit models.TimeUnit) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, now.Location())
	if !candidate.Before(now) {
		return candidate
	}
	switch unit {
	case models.UnitMinutes:
		return candidate.Add(time.Duration(interval) * time.Minute)
	case models.UnitHours:
		return candidate.Add(time.Duration(interval) * time.Hour)
	case models.UnitWeeks:
		return candidate.AddDate(0, 0, interval*7)
	default:
		return candidate.AddDate(0, 0, interval)
	}
}

// buildTrigger maps a unit to the notification subsystem's trigger shape.
// Day-based reminders repeat daily at the chosen time regardless of interval;
// the stored interval remains a display value only.
func buildTrigger(interval int, unit models.TimeUnit, timeOfDay, next time.Time) Trigger {
	switch unit {
	case models.UnitMinutes:
		return Trigger{Kind: TriggerEvery, Every: time.Duration(interval) * time.Minute}
	case models.UnitHours:
		return Trigger{Kind: TriggerEvery, Every: time.Duration(interval) * time.Hour}
	case models.UnitWeeks:
		return Trigger{Kind: TriggerWeekly, Hour: timeOfDay.Hour(), Minute: timeOfDay.Minute(), Weekday: next.Weekday()}
	default:
		return Trigger{Kind: TriggerDaily, Hour: timeOfDay.Hour(), Minute: timeOfDay.Minute()}
	}
}
