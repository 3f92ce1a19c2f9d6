package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"plantkeeper/internal/models"
)

// SetReminder schedules a recurring watering reminder for a plant. An
// existing reminder is replaced.
func (a *App) SetReminder(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}
	unitRaw, err := GetSimpleText(a.reader, "Enter repeat unit (minutes/hours/days/weeks)", os.Stdout)
	if err != nil {
		return err
	}
	unit := models.TimeUnit(strings.ToLower(strings.TrimSpace(unitRaw)))

	intervalRaw, err := GetSimpleText(a.reader, "Enter interval", os.Stdout)
	if err != nil {
		return err
	}
	interval, err := strconv.Atoi(strings.TrimSpace(intervalRaw))
	if err != nil {
		return fmt.Errorf("interval %q is not a whole number", intervalRaw)
	}

	timeRaw, err := GetSimpleText(a.reader, "Enter time of day (HH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	timeOfDay, err := time.Parse("15:04", strings.TrimSpace(timeRaw))
	if err != nil {
		return fmt.Errorf("time %q: expected HH:MM", timeRaw)
	}

	sched, err := a.svc.SetReminder(ctx, id, interval, unit, timeOfDay)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Reminder set: every %d %s at %s (next: %s)",
		sched.Interval, sched.TimeUnit,
		sched.Time.Format("15:04"),
		sched.NextNotification.Format("2006-01-02 15:04")))
	return nil
}

// CancelReminder removes a plant's reminder if one is active.
func (a *App) CancelReminder(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}
	removed, err := a.svc.CancelReminder(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		printlnFn("No reminder for plant", id)
		return nil
	}
	printlnFn("Reminder canceled for plant", id)
	return nil
}
