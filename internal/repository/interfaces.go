package repository

import (
	"context"
	"time"

	"wedsite/internal/domain/models"

	"github.com/google/uuid"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetEventByWWWID(ctx context.Context, wwwID string) (*models.Event, error)
	ListEvents(ctx context.Context, filter models.EventFilter, page, limit int) ([]models.Event, int, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type GalleryRepository interface {
	CreateAlbum(ctx context.Context, album *models.GalleryAlbum) (*models.GalleryAlbum, error)
	GetAlbumByID(ctx context.Context, id uuid.UUID) (*models.GalleryAlbum, error)
	GetEventAlbums(ctx context.Context, eventID uuid.UUID) ([]models.GalleryAlbum, error)
	UpdateAlbum(ctx context.Context, album *models.GalleryAlbum) error
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
	CreateImage(ctx context.Context, image *models.GalleryImage) (*models.GalleryImage, error)
	GetImageByID(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error)
	ListImages(ctx context.Context, filter models.ImageFilter, page, limit int) ([]models.GalleryImage, int, error)
	UpdateImageApproval(ctx context.Context, id uuid.UUID, approved bool) error
	DeleteImage(ctx context.Context, id uuid.UUID) error
	GetGalleryStats(ctx context.Context, eventID uuid.UUID) (models.GalleryStats, error)
}

type RSVPRepository interface {
	CreateRSVP(ctx context.Context, rsvp *models.RSVP) (*models.RSVP, error)
	GetEventRSVPs(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.RSVP, int, error)
	GetRSVPStats(ctx context.Context, eventID uuid.UUID) (models.RSVPStats, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
