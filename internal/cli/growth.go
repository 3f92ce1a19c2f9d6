package cli

import (
	"context"
	"os"

	"plantkeeper/internal/services"
)

// RecordGrowth records a height measurement, converting inches to
// centimeters when asked.
func (a *App) RecordGrowth(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}
	raw, err := GetSimpleText(a.reader, "Enter height", os.Stdout)
	if err != nil {
		return err
	}
	height, err := services.ParseNumber(raw, 0, 10000)
	if err != nil {
		return err
	}
	unitRaw, err := GetSimpleText(a.reader, "Enter unit (cm/in, empty for cm)", os.Stdout)
	if err != nil {
		return err
	}
	unit := services.UnitCentimeters
	if unitRaw == "in" {
		unit = services.UnitInches
	}
	notes, err := GetSimpleText(a.reader, "Enter notes (optional)", os.Stdout)
	if err != nil {
		return err
	}

	g, err := a.svc.RecordGrowth(ctx, id, height, unit, notes)
	if err != nil {
		return err
	}
	printlnFn("Recorded", services.FormatNumber(g.Height, 1)+"cm", "("+string(g.Status)+")")
	return nil
}
