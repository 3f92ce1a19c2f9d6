// Package store implements the local persistence layer: CRUD over the four
// plant-care collections backed by a key-value substrate.
//
// Every mutation is a whole-collection read-modify-write: the substrate only
// supports get/set of a full serialized value per key, and collections are
// bounded by single-user manual entry. Mutations on one Store are serialized
// by a mutex; there is no cross-collection atomicity.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"plantkeeper/internal/logging"
	"plantkeeper/internal/models"
	"plantkeeper/internal/storage"
)

// Collection keys in the substrate.
const (
	keyPlants = "plants"
	keyLogs   = "logs"
	keyGrowth = "growth"
	keyPhotos = "photos"
)

type Store struct {
	kv  storage.KV
	log logging.Logger

	mu     sync.Mutex
	lastID int64

	now func() time.Time // test seam
}

func New(kv storage.KV, log logging.Logger) *Store {
	return &Store{kv: kv, log: log, now: time.Now}
}

// Initialize seeds every collection key with an empty array when absent.
// It is idempotent and never overwrites existing data.
func (s *Store) Initialize(ctx context.Context) error {
	for _, key := range []string{keyPlants, keyLogs, keyGrowth, keyPhotos} {
		_, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if ok {
			continue
		}
		if err := s.kv.Set(ctx, key, "[]"); err != nil {
			return fmt.Errorf("failed to seed %s: %w", key, err)
		}
	}
	return nil
}

// newID returns a timestamp-derived token, bumped by one when two calls land
// on the same millisecond. Callers must hold s.mu.
func (s *Store) newID() string {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// readCollection deserializes the collection under key. An absent key or
// malformed JSON degrades to an empty slice; only substrate failures
// propagate, so every read is total.
func readCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn(ctx, "malformed collection, treating as empty", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func writeCollection[T any](ctx context.Context, s *Store, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// ListPlants returns every registered plant in insertion order.
func (s *Store) ListPlants(ctx context.Context) ([]models.Plant, error) {
	return readCollection[models.Plant](ctx, s, keyPlants)
}

// GetPlant returns the plant with the given id, or nil when absent.
func (s *Store) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	plants, err := s.ListPlants(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plants {
		if plants[i].ID == id {
			return &plants[i], nil
		}
	}
	return nil, nil
}

// AddPlant appends a new plant, assigning a generated id. Field validation
// is the caller's responsibility.
func (s *Store) AddPlant(ctx context.Context, p models.Plant) (models.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plants, err := s.ListPlants(ctx)
	if err != nil {
		return models.Plant{}, err
	}
	p.ID = s.newID()
	plants = append(plants, p)
	if err := writeCollection(ctx, s, keyPlants, plants); err != nil {
		return models.Plant{}, err
	}
	return p, nil
}

// UpdatePlant merges the non-nil fields of upd over the stored record,
// keeping its id. It reports false without error when no plant matches.
func (s *Store) UpdatePlant(ctx context.Context, id string, upd models.PlantUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plants, err := s.ListPlants(ctx)
	if err != nil {
		return false, err
	}
	for i := range plants {
		if plants[i].ID != id {
			continue
		}
		merge(&plants[i], upd)
		if err := writeCollection(ctx, s, keyPlants, plants); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func merge(p *models.Plant, upd models.PlantUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.DateAcquired != nil {
		p.DateAcquired = *upd.DateAcquired
	}
	if upd.CareInstructions != nil {
		p.CareInstructions = *upd.CareInstructions
	}
	if upd.Sunlight != nil {
		p.Sunlight = *upd.Sunlight
	}
	if upd.SoilType != nil {
		p.SoilType = *upd.SoilType
	}
	if upd.WateringNeeds != nil {
		p.WateringNeeds = *upd.WateringNeeds
	}
}

// DeletePlant removes the plant and cascades to its photos. Care logs and
// growth records referencing the plant are left in place and stay queryable.
// It reports whether a plant was actually removed.
func (s *Store) DeletePlant(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plants, err := s.ListPlants(ctx)
	if err != nil {
		return false, err
	}
	kept := plants[:0:0]
	for _, p := range plants {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(plants)
	if err := writeCollection(ctx, s, keyPlants, kept); err != nil {
		return false, err
	}

	photos, err := readCollection[models.Photo](ctx, s, keyPhotos)
	if err != nil {
		return removed, err
	}
	keptPhotos := photos[:0:0]
	for _, ph := range photos {
		if ph.PlantID != id {
			keptPhotos = append(keptPhotos, ph)
		}
	}
	if len(keptPhotos) != len(photos) {
		if err := writeCollection(ctx, s, keyPhotos, keptPhotos); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// AddLog appends a care log with a generated id. Logs are immutable.
func (s *Store) AddLog(ctx context.Context, l models.CareLog) (models.CareLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs, err := readCollection[models.CareLog](ctx, s, keyLogs)
	if err != nil {
		return models.CareLog{}, err
	}
	l.ID = s.newID()
	logs = append(logs, l)
	if err := writeCollection(ctx, s, keyLogs, logs); err != nil {
		return models.CareLog{}, err
	}
	return l, nil
}

// ListLogs returns the plant's care logs in insertion order.
func (s *Store) ListLogs(ctx context.Context, plantID string) ([]models.CareLog, error) {
	logs, err := readCollection[models.CareLog](ctx, s, keyLogs)
	if err != nil {
		return nil, err
	}
	result := make([]models.CareLog, 0, len(logs))
	for _, l := range logs {
		if l.PlantID == plantID {
			result = append(result, l)
		}
	}
	return result, nil
}

// AddGrowth appends a growth record with a generated id, defaulting Date to
// today when the caller omitted it. Status is persisted as given.
func (s *Store) AddGrowth(ctx context.Context, rec models.GrowthRecord) (models.GrowthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readCollection[models.GrowthRecord](ctx, s, keyGrowth)
	if err != nil {
		return models.GrowthRecord{}, err
	}
	rec.ID = s.newID()
	if rec.Date == "" {
		rec.Date = s.now().Format("2006-01-02")
	}
	records = append(records, rec)
	if err := writeCollection(ctx, s, keyGrowth, records); err != nil {
		return models.GrowthRecord{}, err
	}
	return rec, nil
}

// ListGrowth returns the plant's growth records in insertion order; trend
// ordering for display is the caller's concern.
func (s *Store) ListGrowth(ctx context.Context, plantID string) ([]models.GrowthRecord, error) {
	records, err := readCollection[models.GrowthRecord](ctx, s, keyGrowth)
	if err != nil {
		return nil, err
	}
	result := make([]models.GrowthRecord, 0, len(records))
	for _, r := range records {
		if r.PlantID == plantID {
			result = append(result, r)
		}
	}
	return result, nil
}

// AddPhoto appends a photo reference, stamping the creation time itself.
func (s *Store) AddPhoto(ctx context.Context, plantID, uri string) (models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos, err := readCollection[models.Photo](ctx, s, keyPhotos)
	if err != nil {
		return models.Photo{}, err
	}
	photo := models.Photo{
		ID:        s.newID(),
		PlantID:   plantID,
		URI:       uri,
		Timestamp: s.now(),
	}
	photos = append(photos, photo)
	if err := writeCollection(ctx, s, keyPhotos, photos); err != nil {
		return models.Photo{}, err
	}
	return photo, nil
}

// ListPhotos returns the plant's photos newest first.
func (s *Store) ListPhotos(ctx context.Context, plantID string) ([]models.Photo, error) {
	photos, err := readCollection[models.Photo](ctx, s, keyPhotos)
	if err != nil {
		return nil, err
	}
	result := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if p.PlantID == plantID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}
