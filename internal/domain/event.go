package domain

import "time"

// SubmissionEvent announces a record that was accepted by the record store.
type SubmissionEvent struct {
	Category    Category  `json:"category"`
	Collection  string    `json:"collection"`
	City        string    `json:"city"`
	CityID      string    `json:"city_id"`
	Payload     *Payload  `json:"payload"`
	Summary     string    `json:"summary"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewSubmissionEvent stamps an event with the current time.
func NewSubmissionEvent(c Category, city, cityID string, p *Payload, summary string) SubmissionEvent {
	return SubmissionEvent{
		Category:    c,
		Collection:  c.Collection(),
		City:        city,
		CityID:      cityID,
		Payload:     p,
		Summary:     summary,
		SubmittedAt: clock.Now().UTC(),
	}
}
