package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, m)
	case string:
		return json.Unmarshal([]byte(b), m)
	default:
		return fmt.Errorf("unsupported type %T for Metadata", value)
	}
}

// GalleryAlbum groups images within one event. It carries no content itself.
type GalleryAlbum struct {
	ID          uuid.UUID `json:"id" db:"id"`
	EventID     uuid.UUID `json:"eventId" db:"event_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CoverImage  string    `json:"coverImage" db:"cover_image"`
	IsPublic    bool      `json:"isPublic" db:"is_public"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// GalleryImage is metadata for a file already stored in the CDN. The binary
// bytes never pass through this layer. New rows start unapproved and stay off
// the public gallery until a moderator flips the flag.
type GalleryImage struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	AlbumID          uuid.UUID  `json:"albumId" db:"album_id"`
	EventID          uuid.UUID  `json:"eventId" db:"event_id"`
	FileName         string     `json:"fileName" db:"file_name"`
	OriginalFilename string     `json:"originalFilename" db:"original_filename"`
	FileSize         int64      `json:"fileSize" db:"file_size"`
	MimeType         string     `json:"mimeType" db:"mime_type"`
	ImageURL         string     `json:"imageUrl" db:"image_url"`
	ThumbnailURL     string     `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	UploadedBy       *uuid.UUID `json:"uploadedBy,omitempty" db:"uploaded_by"`
	IsApproved       bool       `json:"isApproved" db:"is_approved"`
	Metadata         Metadata   `json:"metadata,omitempty" db:"metadata"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// GalleryStats is a dashboard aggregate over one event's gallery.
type GalleryStats struct {
	TotalImages    int `json:"totalImages"`
	ApprovedImages int `json:"approvedImages"`
	PendingImages  int `json:"pendingImages"`
	TotalAlbums    int `json:"totalAlbums"`
}

// ImageFilter narrows image listings.
type ImageFilter struct {
	AlbumID    *uuid.UUID
	EventID    *uuid.UUID
	Approved   *bool
	UploadedBy *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ValidationError collects the reasons an upload was rejected before any
// network call was made.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
