package cli

import (
	"context"
	"os"
)

// LogCare records a care action for a plant. The date defaults to today when
// left empty.
func (a *App) LogCare(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}
	careType, err := GetSimpleText(a.reader, "Enter care type (e.g. watering, fertilizing, pruning)", os.Stdout)
	if err != nil {
		return err
	}
	date, err := GetSimpleText(a.reader, "Enter date (YYYY-MM-DD, empty for today)", os.Stdout)
	if err != nil {
		return err
	}
	notes, err := GetSimpleText(a.reader, "Enter notes (optional)", os.Stdout)
	if err != nil {
		return err
	}

	l, err := a.svc.LogCare(ctx, id, careType, date, notes)
	if err != nil {
		return err
	}
	printlnFn("Logged", string(l.Category()), "on", l.Date)
	return nil
}
