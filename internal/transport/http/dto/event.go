package dto

import (
	"time"

	"wedsite/internal/domain/models"
)

type CreateEventRequest struct {
	Title          string    `json:"title" validate:"required,max=255"`
	CoupleNames    string    `json:"coupleNames" validate:"required,max=255"`
	EventDate      time.Time `json:"eventDate" validate:"required"`
	Venue          string    `json:"venue" validate:"max=255"`
	Description    string    `json:"description"`
	GalleryEnabled bool      `json:"galleryEnabled"`
	RSVPEnabled    bool      `json:"rsvpEnabled"`
}

type ListEventsRequest struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Status   string `query:"status"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
	Search   string `query:"search"`
}

// PaginatedResponse is the common listing envelope.
type PaginatedResponse struct {
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"hasMore"`
}

func NewPaginatedResponse(data interface{}, total, page, limit int) PaginatedResponse {
	return PaginatedResponse{
		Data:    data,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: total > page*limit,
	}
}

// PublicEventResponse is what the guest site receives: visible sections only,
// no organizer/ownership fields.
type PublicEventResponse struct {
	WWWID          string                   `json:"wwwId"`
	Title          string                   `json:"title"`
	CoupleNames    string                   `json:"coupleNames"`
	EventDate      time.Time                `json:"eventDate"`
	Venue          string                   `json:"venue"`
	Description    string                   `json:"description"`
	GalleryEnabled bool                     `json:"galleryEnabled"`
	RSVPEnabled    bool                     `json:"rsvpEnabled"`
	Visibility     models.SectionVisibility `json:"sectionVisibility"`
	Content        *models.SectionContent   `json:"sectionContent"`
}

func NewPublicEventResponse(event *models.Event) *PublicEventResponse {
	return &PublicEventResponse{
		WWWID:          event.WWWID,
		Title:          event.Title,
		CoupleNames:    event.CoupleNames,
		EventDate:      event.EventDate,
		Venue:          event.Venue,
		Description:    event.Description,
		GalleryEnabled: event.GalleryEnabled,
		RSVPEnabled:    event.RSVPEnabled,
		Visibility:     event.Visibility,
		Content:        event.Content,
	}
}
