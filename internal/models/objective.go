package models

import "time"

// Objective is a savings or performance goal. CurrentValue and Status are
// derived and refreshed by the progress engine.
type Objective struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	TargetValue    float64         `json:"target_value"`
	CurrentValue   float64         `json:"current_value"`
	Type           ObjectiveType   `json:"type"`
	ImageURL       string          `json:"image_url"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Status         ObjectiveStatus `json:"status"`
	DepositedFunds float64         `json:"deposited_funds"`
	ManualProgress *float64        `json:"manual_progress,omitempty"`
}

// Progress returns CurrentValue as a fraction of TargetValue.
func (o Objective) Progress() float64 {
	if o.TargetValue <= 0 {
		return 0
	}
	return o.CurrentValue / o.TargetValue
}

// ObjectiveInput holds the raw fields collected for a new objective.
type ObjectiveInput struct {
	Title       string
	Description string
	TargetValue float64
	Type        ObjectiveType
	ImageURL    string
	StartDate   time.Time
	EndDate     time.Time
}
