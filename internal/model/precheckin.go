package model

import "time"

// PreCheckin reserves one of a room's slots for a future guest arrival
// without creating a collaborator record. GuestName may be nil when the
// guest is not yet known.
type PreCheckin struct {
	GuestName   *string   `json:"guestName"`
	CheckinDate time.Time `json:"checkinDate"`
	Notes       string    `json:"notes"`
}
