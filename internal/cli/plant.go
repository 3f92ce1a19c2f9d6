package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"plantkeeper/internal/models"
	"plantkeeper/internal/services"
)

// AddPlant collects the plant fields and registers the plant. Only the name
// is required; empty answers leave the optional fields unset.
func (a *App) AddPlant(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter plant name", os.Stdout)
	if err != nil {
		return err
	}
	dateAcquired, err := GetSimpleText(a.reader, "Enter date acquired (YYYY-MM-DD, optional)", os.Stdout)
	if err != nil {
		return err
	}
	sunlight, err := GetSimpleText(a.reader, "Enter sunlight needs (optional)", os.Stdout)
	if err != nil {
		return err
	}
	soilType, err := GetSimpleText(a.reader, "Enter soil type (optional)", os.Stdout)
	if err != nil {
		return err
	}
	wateringNeeds, err := GetSimpleText(a.reader, "Enter watering needs (optional)", os.Stdout)
	if err != nil {
		return err
	}
	careInstructions, err := GetMultiline(a.reader, "Enter care instructions (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.svc.AddPlant(ctx, models.Plant{
		Name:             name,
		DateAcquired:     dateAcquired,
		Sunlight:         sunlight,
		SoilType:         soilType,
		WateringNeeds:    wateringNeeds,
		CareInstructions: careInstructions,
	})
	if err != nil {
		return err
	}
	printlnFn("Added plant", p.Name, "with id", p.ID)
	return nil
}

// ListPlants prints one line per registered plant.
func (a *App) ListPlants(ctx context.Context) error {
	plants, err := a.svc.ListPlants(ctx)
	if err != nil {
		return err
	}
	if len(plants) == 0 {
		printlnFn("No plants yet. Use 'add' to register one.")
		return nil
	}
	for _, p := range plants {
		line := fmt.Sprintf("%s  %s", p.ID, p.Name)
		if p.DateAcquired != "" {
			line += fmt.Sprintf("  (since %s)", p.DateAcquired)
		}
		printlnFn(line)
	}
	return nil
}

// ShowPlant prints the full card for one plant: fields, stats, care logs,
// growth records, photos and the active reminder if any.
func (a *App) ShowPlant(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}

	plant, err := a.svc.GetPlant(ctx, id)
	if err != nil {
		return err
	}
	if plant == nil {
		printlnFn("Plant not found:", id)
		return nil
	}

	printlnFn(plant.Name)
	if plant.DateAcquired != "" {
		printlnFn("Acquired:", plant.DateAcquired)
	}
	if plant.Sunlight != "" {
		printlnFn("Sunlight:", plant.Sunlight)
	}
	if plant.SoilType != "" {
		printlnFn("Soil:", plant.SoilType)
	}
	if plant.WateringNeeds != "" {
		printlnFn("Watering:", plant.WateringNeeds)
	}
	if plant.CareInstructions != "" {
		printlnFn("Care instructions:", plant.CareInstructions)
	}

	stats, err := a.svc.Stats(ctx, id)
	if err != nil {
		return err
	}
	if stats.DaysOwnedKnown {
		printlnFn("Days owned:", stats.DaysOwned)
	}
	lastWatered := stats.LastWatered
	if lastWatered == "" {
		lastWatered = "never"
	}
	printlnFn("Care actions:", stats.TotalLogs, "- last watered:", lastWatered)

	logs, err := a.svc.ListLogs(ctx, id)
	if err != nil {
		return err
	}
	for _, l := range logs {
		line := fmt.Sprintf("  %s  %-12s %s", l.Date, l.Category(), l.Type)
		if l.Notes != "" {
			line += " - " + l.Notes
		}
		printlnFn(line)
	}

	growth, err := a.svc.ListGrowth(ctx, id)
	if err != nil {
		return err
	}
	for _, g := range growth {
		printlnFn(fmt.Sprintf("  %s  %scm  %s", g.Date, services.FormatNumber(g.Height, 1), g.Status))
	}

	photos, err := a.svc.ListPhotos(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range photos {
		printlnFn("  photo:", p.URI, p.Timestamp.Format("2006-01-02 15:04"))
	}

	sched, err := a.svc.CheckReminder(ctx, id)
	if err != nil {
		return err
	}
	if sched != nil {
		printlnFn(fmt.Sprintf("Reminder: every %d %s at %s (next: %s)",
			sched.Interval, sched.TimeUnit,
			sched.Time.Format("15:04"),
			sched.NextNotification.Format("2006-01-02 15:04")))
	}
	return nil
}

// EditPlant updates individual fields; empty answers keep the stored value.
func (a *App) EditPlant(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id", os.Stdout)
	if err != nil {
		return err
	}

	var upd models.PlantUpdate
	prompts := []struct {
		label string
		field **string
	}{
		{"New name (empty to keep)", &upd.Name},
		{"New date acquired (empty to keep)", &upd.DateAcquired},
		{"New sunlight needs (empty to keep)", &upd.Sunlight},
		{"New soil type (empty to keep)", &upd.SoilType},
		{"New watering needs (empty to keep)", &upd.WateringNeeds},
		{"New care instructions (empty to keep)", &upd.CareInstructions},
	}
	for _, p := range prompts {
		answer, err := GetSimpleText(a.reader, p.label, os.Stdout)
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) != "" {
			v := answer
			*p.field = &v
		}
	}

	ok, err := a.svc.UpdatePlant(ctx, id, upd)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Nothing to update: no plant with id", id)
		return nil
	}
	printlnFn("Updated plant", id)
	return nil
}

// DeletePlant removes a plant and its photos after a confirmation prompt.
func (a *App) DeletePlant(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter plant id to delete", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := GetSimpleText(a.reader, "This also deletes its photos. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "yes" {
		printlnFn("Canceled.")
		return nil
	}

	removed, err := a.svc.DeletePlant(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		printlnFn("No plant with id", id)
		return nil
	}
	printlnFn("Deleted plant", id)
	return nil
}
