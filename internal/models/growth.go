package models

// GrowthStatus is a display tag comparing a measurement against the previous
// record's height. The store persists whatever it is given without
// recomputation.
type GrowthStatus string

const (
	GrowthThriving  GrowthStatus = "thriving"
	GrowthStable    GrowthStatus = "stable"
	GrowthDeclining GrowthStatus = "declining"
	GrowthUnknown   GrowthStatus = "unknown"
)

// GrowthRecord is one growth measurement. Height is stored in centimeters;
// unit conversion happens before the record reaches the store.
type GrowthRecord struct {
	ID      string       `json:"id"`
	PlantID string       `json:"plantId"`
	Height  float64      `json:"height"`
	Date    string       `json:"date"` // YYYY-MM-DD, defaulted at creation
	Status  GrowthStatus `json:"status,omitempty"`
	Notes   string       `json:"notes,omitempty"`
}
