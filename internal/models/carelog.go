package models

import "strings"

// CareLog records a single care action for a plant. Logs are immutable once
// written; PlantID is a soft reference the store never validates.
type CareLog struct {
	ID      string `json:"id"`
	PlantID string `json:"plantId"`
	Type    string `json:"type"`
	Date    string `json:"date"` // YYYY-MM-DD
	Notes   string `json:"notes,omitempty"`
}

// CareCategory is the coarse grouping derived from the free-text Type.
type CareCategory string

const (
	CareWatering    CareCategory = "watering"
	CareFertilizing CareCategory = "fertilizing"
	CarePruning     CareCategory = "pruning"
	CareRepotting   CareCategory = "repotting"
	CareOther       CareCategory = "other"
)

// Category classifies the log by substring matching on Type, so entries like
// "Watered thoroughly" or "deep watering" all count as watering.
func (l CareLog) Category() CareCategory {
	t := strings.ToLower(l.Type)
	switch {
	case strings.Contains(t, "water"):
		return CareWatering
	case strings.Contains(t, "fertiliz"):
		return CareFertilizing
	case strings.Contains(t, "prun"):
		return CarePruning
	case strings.Contains(t, "repot"):
		return CareRepotting
	default:
		return CareOther
	}
}
