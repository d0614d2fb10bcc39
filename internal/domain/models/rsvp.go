package models

import (
	"time"

	"github.com/google/uuid"
)

type RSVPStatus string

const (
	RSVPStatusAttending    RSVPStatus = "attending"
	RSVPStatusNotAttending RSVPStatus = "not_attending"
	RSVPStatusMaybe        RSVPStatus = "maybe"
)

func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusAttending, RSVPStatusNotAttending, RSVPStatusMaybe:
		return true
	}
	return false
}

// RSVP is one guest response submitted through the public site.
type RSVP struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	EventID     uuid.UUID  `json:"eventId" db:"event_id"`
	GuestName   string     `json:"guestName" db:"guest_name"`
	GuestEmail  string     `json:"guestEmail,omitempty" db:"guest_email"`
	Status      RSVPStatus `json:"status" db:"status"`
	PlusOnes    int        `json:"plusOnes" db:"plus_ones"`
	MenuChoices []string   `json:"menuChoices,omitempty" db:"menu_choices"`
	Note        string     `json:"note,omitempty" db:"note"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// RSVPStats aggregates responses for the dashboard.
type RSVPStats struct {
	Attending    int `json:"attending"`
	NotAttending int `json:"notAttending"`
	Maybe        int `json:"maybe"`
	PlusOnes     int `json:"plusOnes"`
	Total        int `json:"total"`
}
