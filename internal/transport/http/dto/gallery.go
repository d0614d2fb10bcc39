package dto

import "github.com/google/uuid"

type CreateAlbumRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	IsPublic    bool   `json:"isPublic"`
}

type UpdateAlbumRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// UploadImageInput records metadata for a file that already landed in the
// CDN. IsApproved is deliberately absent: new rows always start unapproved.
type UploadImageInput struct {
	AlbumID          uuid.UUID              `json:"albumId" validate:"required"`
	EventID          uuid.UUID              `json:"eventId" validate:"required"`
	FileName         string                 `json:"fileName" validate:"required"`
	OriginalFilename string                 `json:"originalFilename"`
	FileSize         int64                  `json:"fileSize" validate:"required,min=1"`
	MimeType         string                 `json:"mimeType"`
	ImageURL         string                 `json:"imageUrl" validate:"required"`
	ThumbnailURL     string                 `json:"thumbnailUrl"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateApprovalRequest struct {
	IsApproved bool `json:"isApproved"`
}

type ListImagesRequest struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Approved string `query:"approved"`
	AlbumID  string `query:"album_id"`
}
