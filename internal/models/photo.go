package models

import "time"

// Photo references a locally stored image. The store keeps only the URI,
// never the file bytes. Photos are the one collection that cascade-deletes
// with their plant.
type Photo struct {
	ID        string    `json:"id"`
	PlantID   string    `json:"plantId"`
	URI       string    `json:"uri"`
	Timestamp time.Time `json:"timestamp"`
}
