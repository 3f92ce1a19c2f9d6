// Package services contains the application logic sitting between the CLI
// and the store/scheduler: field validation, unit conversion, growth status
// derivation and plant statistics.
package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"plantkeeper/internal/common"
	"plantkeeper/internal/filex"
	"plantkeeper/internal/logging"
	"plantkeeper/internal/models"
	"plantkeeper/internal/reminder"
	"plantkeeper/internal/store"
)

// HeightUnit is the measurement unit a growth value arrives in. Records are
// always stored in centimeters.
type HeightUnit string

const (
	UnitCentimeters HeightUnit = "cm"
	UnitInches      HeightUnit = "in"
)

// PlantStats summarizes a plant for display.
type PlantStats struct {
	DaysOwned      int
	DaysOwnedKnown bool // false when the plant has no acquisition date
	TotalLogs      int
	LastWatered    string // YYYY-MM-DD, "" when never watered
}

type PlantService struct {
	store    *store.Store
	sched    *reminder.Scheduler
	log      logging.Logger
	photoDir string

	now func() time.Time // test seam
}

func NewPlantService(st *store.Store, sched *reminder.Scheduler, log logging.Logger, photoDir string) *PlantService {
	return &PlantService{store: st, sched: sched, log: log, photoDir: photoDir, now: time.Now}
}

// AddPlant validates the name and registers the plant.
func (s *PlantService) AddPlant(ctx context.Context, p models.Plant) (models.Plant, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.Plant{}, common.ErrNameRequired
	}
	return s.store.AddPlant(ctx, p)
}

func (s *PlantService) ListPlants(ctx context.Context) ([]models.Plant, error) {
	return s.store.ListPlants(ctx)
}

func (s *PlantService) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	return s.store.GetPlant(ctx, id)
}

// UpdatePlant merges the given fields; an updated name must stay non-empty.
func (s *PlantService) UpdatePlant(ctx context.Context, id string, upd models.PlantUpdate) (bool, error) {
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if trimmed == "" {
			return false, common.ErrNameRequired
		}
		upd.Name = &trimmed
	}
	return s.store.UpdatePlant(ctx, id, upd)
}

func (s *PlantService) DeletePlant(ctx context.Context, id string) (bool, error) {
	return s.store.DeletePlant(ctx, id)
}

// LogCare records a care action for today unless a date is supplied.
func (s *PlantService) LogCare(ctx context.Context, plantID, careType, date, notes string) (models.CareLog, error) {
	careType = strings.TrimSpace(careType)
	if careType == "" {
		return models.CareLog{}, common.ErrNameRequired
	}
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	return s.store.AddLog(ctx, models.CareLog{PlantID: plantID, Type: careType, Date: date, Notes: notes})
}

func (s *PlantService) ListLogs(ctx context.Context, plantID string) ([]models.CareLog, error) {
	return s.store.ListLogs(ctx, plantID)
}

// RecordGrowth converts the measurement to centimeters, derives the growth
// status from the previous record and persists the result.
func (s *PlantService) RecordGrowth(ctx context.Context, plantID string, height float64, unit HeightUnit, notes string) (models.GrowthRecord, error) {
	cm := toCentimeters(height, unit)

	previous, err := s.store.ListGrowth(ctx, plantID)
	if err != nil {
		return models.GrowthRecord{}, err
	}

	status := models.GrowthUnknown
	if len(previous) > 0 {
		last := previous[len(previous)-1]
		switch {
		case cm > last.Height:
			status = models.GrowthThriving
		case cm < last.Height:
			status = models.GrowthDeclining
		default:
			status = models.GrowthStable
		}
	}

	return s.store.AddGrowth(ctx, models.GrowthRecord{
		PlantID: plantID,
		Height:  cm,
		Status:  status,
		Notes:   notes,
	})
}

func (s *PlantService) ListGrowth(ctx context.Context, plantID string) ([]models.GrowthRecord, error) {
	return s.store.ListGrowth(ctx, plantID)
}

// toCentimeters converts to cm and rounds to one decimal, the precision the
// gallery and trend views display.
func toCentimeters(height float64, unit HeightUnit) float64 {
	if unit == UnitInches {
		height *= 2.54
	}
	return math.Round(height*10) / 10
}

// AttachPhoto copies the image into the gallery directory and stores the
// reference. The store itself never touches file bytes.
func (s *PlantService) AttachPhoto(ctx context.Context, plantID, srcPath string) (models.Photo, error) {
	dst, err := filex.CopyFile(s.photoDir, srcPath)
	if err != nil {
		return models.Photo{}, fmt.Errorf("save photo: %w", err)
	}
	return s.store.AddPhoto(ctx, plantID, dst)
}

func (s *PlantService) ListPhotos(ctx context.Context, plantID string) ([]models.Photo, error) {
	return s.store.ListPhotos(ctx, plantID)
}

// Stats derives the display statistics for one plant.
func (s *PlantService) Stats(ctx context.Context, plantID string) (PlantStats, error) {
	var stats PlantStats

	plant, err := s.store.GetPlant(ctx, plantID)
	if err != nil {
		return stats, err
	}
	if plant == nil {
		return stats, common.ErrNotFound
	}

	if plant.DateAcquired != "" {
		if acquired, err := time.Parse("2006-01-02", plant.DateAcquired); err == nil {
			days := int(math.Ceil(s.now().Sub(acquired).Hours() / 24))
			if days < 0 {
				days = 0
			}
			stats.DaysOwned = days
			stats.DaysOwnedKnown = true
		}
	}

	logs, err := s.store.ListLogs(ctx, plantID)
	if err != nil {
		return stats, err
	}
	stats.TotalLogs = len(logs)
	for _, l := range logs {
		if l.Category() == models.CareWatering {
			stats.LastWatered = l.Date
		}
	}
	return stats, nil
}

// SetReminder schedules a recurring watering reminder, naming the plant in
// the notification text.
func (s *PlantService) SetReminder(ctx context.Context, plantID string, interval int, unit models.TimeUnit, timeOfDay time.Time) (models.ReminderSchedule, error) {
	plant, err := s.store.GetPlant(ctx, plantID)
	if err != nil {
		return models.ReminderSchedule{}, err
	}
	if plant == nil {
		return models.ReminderSchedule{}, common.ErrNotFound
	}
	return s.sched.Set(ctx, plantID, interval, unit, timeOfDay, plant.Name)
}

func (s *PlantService) CancelReminder(ctx context.Context, plantID string) (bool, error) {
	return s.sched.Cancel(ctx, plantID)
}

func (s *PlantService) CheckReminder(ctx context.Context, plantID string) (*models.ReminderSchedule, error) {
	return s.sched.Check(ctx, plantID)
}

func (s *PlantService) CleanupReminders(ctx context.Context) (int, error) {
	return s.sched.Cleanup(ctx)
}
