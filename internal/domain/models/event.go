package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusPlanned   EventStatus = "planned"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPlanned, EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// EventSettings is a legacy grab-bag column. Events created before the
// section documents got their own columns may carry them in here, so reads
// fall back to it before applying hardcoded defaults.
type EventSettings struct {
	SectionVisibility SectionVisibility `json:"sectionVisibility,omitempty"`
	SectionContent    *SectionContent   `json:"sectionContent,omitempty"`
}

func (s EventSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *EventSettings) Scan(value interface{}) error {
	if value == nil {
		*s = EventSettings{}
		return nil
	}
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, s)
	case string:
		return json.Unmarshal([]byte(b), s)
	default:
		return fmt.Errorf("unsupported type %T for EventSettings", value)
	}
}

// Event is one wedding micro-site: identity, schedule and the two section
// documents driving the guest-facing pages.
type Event struct {
	ID             uuid.UUID          `json:"id" db:"id"`
	WWWID          string             `json:"wwwId" db:"www_id"`
	Title          string             `json:"title" db:"title"`
	CoupleNames    string             `json:"coupleNames" db:"couple_names"`
	EventDate      time.Time          `json:"eventDate" db:"event_date"`
	Venue          string             `json:"venue" db:"venue"`
	Description    string             `json:"description" db:"description"`
	OrganizerID    *uuid.UUID         `json:"organizerId,omitempty" db:"organizer_id"`
	Status         EventStatus        `json:"status" db:"status"`
	GalleryEnabled bool               `json:"galleryEnabled" db:"gallery_enabled"`
	RSVPEnabled    bool               `json:"rsvpEnabled" db:"rsvp_enabled"`
	Visibility     SectionVisibility  `json:"sectionVisibility" db:"section_visibility"`
	Content        *SectionContent    `json:"sectionContent" db:"section_content"`
	Settings       EventSettings      `json:"-" db:"settings"`
	CreatedAt      time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" db:"updated_at"`
}

// Normalize resolves the section documents for a row read from storage:
// column value first, then the legacy settings fallback, then defaults. After
// a call both documents are complete for all known sections.
func (e *Event) Normalize() {
	if e.Visibility == nil {
		if e.Settings.SectionVisibility != nil {
			e.Visibility = e.Settings.SectionVisibility
		} else {
			e.Visibility = DefaultSectionVisibility()
		}
	}
	e.Visibility.EnsureComplete()

	if e.Content == nil {
		if e.Settings.SectionContent != nil {
			e.Content = e.Settings.SectionContent
		} else {
			e.Content = DefaultSectionContent(e.Title, e.Venue, e.EventDate)
		}
	}
	e.Content.EnsureComplete(e.Title, e.Venue, e.EventDate)
}

// EventPatch is a partial update: nil fields are left untouched in storage.
// Section documents, when present, replace the stored document wholesale.
type EventPatch struct {
	Title          *string            `json:"title,omitempty"`
	CoupleNames    *string            `json:"coupleNames,omitempty"`
	EventDate      *time.Time         `json:"eventDate,omitempty"`
	Venue          *string            `json:"venue,omitempty"`
	Description    *string            `json:"description,omitempty"`
	OrganizerID    *uuid.UUID         `json:"organizerId,omitempty"`
	Status         *EventStatus       `json:"status,omitempty"`
	GalleryEnabled *bool              `json:"galleryEnabled,omitempty"`
	RSVPEnabled    *bool              `json:"rsvpEnabled,omitempty"`
	Visibility     *SectionVisibility `json:"sectionVisibility,omitempty"`
	Content        *SectionContent    `json:"sectionContent,omitempty"`
}

func (p EventPatch) Empty() bool {
	return p.Title == nil && p.CoupleNames == nil && p.EventDate == nil &&
		p.Venue == nil && p.Description == nil && p.OrganizerID == nil &&
		p.Status == nil && p.GalleryEnabled == nil && p.RSVPEnabled == nil &&
		p.Visibility == nil && p.Content == nil
}

// EventFilter narrows event listings.
type EventFilter struct {
	OrganizerID *uuid.UUID
	Status      EventStatus
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string
}

type Role string

const (
	RoleOrganizer  Role = "organizer"
	RoleSuperadmin Role = "superadmin"
)
