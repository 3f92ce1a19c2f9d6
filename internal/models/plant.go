// Package models defines the entities persisted by the plantkeeper store.
// JSON tags match the on-disk layout of the key-value substrate.
package models

// Plant is one user-registered plant. Name is the user-facing identifier;
// every other descriptive field is optional free text.
type Plant struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DateAcquired     string `json:"dateAcquired,omitempty"` // YYYY-MM-DD
	CareInstructions string `json:"careInstructions,omitempty"`
	Sunlight         string `json:"sunlight,omitempty"`
	SoilType         string `json:"soilType,omitempty"`
	WateringNeeds    string `json:"wateringNeeds,omitempty"`
}

// PlantUpdate carries the mutable fields of Plant for merge updates. Only
// non-nil fields overwrite the stored record; ID is never updatable.
type PlantUpdate struct {
	Name             *string
	DateAcquired     *string
	CareInstructions *string
	Sunlight         *string
	SoilType         *string
	WateringNeeds    *string
}
