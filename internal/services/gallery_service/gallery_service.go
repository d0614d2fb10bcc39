package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	"wedsite/internal/repository"
	"wedsite/internal/storage/bunny"
	"wedsite/internal/transport/http/dto"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrAlbumNotFound = errors.New("album not found")
	ErrImageNotFound = errors.New("image not found")
)

// statsCacheTTL keeps the dashboard aggregate off the database on every poll.
const statsCacheTTL = 30 * time.Second

type GalleryService struct {
	log         *slog.Logger
	repo        repository.GalleryRepository
	fileStorage bunny.FileStorage
	statsCache  *gocache.Cache
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryRepository, fileStorage bunny.FileStorage) *GalleryService {
	return &GalleryService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
		statsCache:  gocache.New(statsCacheTTL, time.Minute),
	}
}

func (s *GalleryService) CreateAlbum(ctx context.Context, eventID uuid.UUID, req dto.CreateAlbumRequest) (*models.GalleryAlbum, error) {
	const op = "gallery_service.CreateAlbum"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", eventID.String()),
		slog.String("name", req.Name),
	)

	album := &models.GalleryAlbum{
		ID:          uuid.New(),
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		IsPublic:    req.IsPublic,
	}

	created, err := s.repo.CreateAlbum(ctx, album)
	if err != nil {
		log.Error("failed to create album", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateStats(eventID)
	log.Info("album created", slog.String("album_id", created.ID.String()))

	return created, nil
}

func (s *GalleryService) GetAlbumByID(ctx context.Context, id uuid.UUID) (*models.GalleryAlbum, error) {
	const op = "gallery_service.GetAlbumByID"

	album, err := s.repo.GetAlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

func (s *GalleryService) GetEventAlbums(ctx context.Context, eventID uuid.UUID) ([]models.GalleryAlbum, error) {
	const op = "gallery_service.GetEventAlbums"

	albums, err := s.repo.GetEventAlbums(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return albums, nil
}

// UpdateAlbum applies the present fields of the request to the stored album.
func (s *GalleryService) UpdateAlbum(ctx context.Context, id uuid.UUID, req dto.UpdateAlbumRequest) (*models.GalleryAlbum, error) {
	const op = "gallery_service.UpdateAlbum"

	album, err := s.repo.GetAlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAlbumNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		album.Name = *req.Name
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.CoverImage != nil {
		album.CoverImage = *req.CoverImage
	}
	if req.IsPublic != nil {
		album.IsPublic = *req.IsPublic
	}

	if err := s.repo.UpdateAlbum(ctx, album); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

// DeleteAlbum removes the album with its image rows, then best-effort deletes
// the stored files.
func (s *GalleryService) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	const op = "gallery_service.DeleteAlbum"

	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", id.String()),
	)

	album, err := s.repo.GetAlbumByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	albumID := album.ID
	images, _, err := s.repo.ListImages(ctx, models.ImageFilter{AlbumID: &albumID}, 1, 100)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteAlbum(ctx, id); err != nil {
		log.Error("failed to delete album", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.fileStorage != nil {
		for _, img := range images {
			if err := s.fileStorage.Delete(ctx, img.FileName); err != nil {
				log.Warn("failed to delete stored file", slog.String("file", img.FileName), sl.Err(err))
			}
		}
	}

	s.invalidateStats(album.EventID)
	log.Info("album deleted", slog.Int("images_removed", len(images)))

	return nil
}

// UploadImage records metadata for a file that already landed in the CDN.
// Approval is never taken from the caller: every new image starts hidden and
// waits for a moderator.
func (s *GalleryService) UploadImage(ctx context.Context, input dto.UploadImageInput, uploadedBy *uuid.UUID) (*models.GalleryImage, error) {
	const op = "gallery_service.UploadImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("album_id", input.AlbumID.String()),
		slog.String("file_name", input.FileName),
	)

	image := &models.GalleryImage{
		ID:               uuid.New(),
		AlbumID:          input.AlbumID,
		EventID:          input.EventID,
		FileName:         input.FileName,
		OriginalFilename: input.OriginalFilename,
		FileSize:         input.FileSize,
		MimeType:         input.MimeType,
		ImageURL:         input.ImageURL,
		ThumbnailURL:     input.ThumbnailURL,
		UploadedBy:       uploadedBy,
		IsApproved:       false,
		Metadata:         input.Metadata,
	}

	created, err := s.repo.CreateImage(ctx, image)
	if err != nil {
		log.Error("failed to save image", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateStats(input.EventID)
	log.Info("image saved", slog.String("image_id", created.ID.String()))

	return created, nil
}

func (s *GalleryService) GetImagesPaginated(ctx context.Context, filter models.ImageFilter, page, limit int) ([]models.GalleryImage, int, error) {
	const op = "gallery_service.GetImagesPaginated"

	images, total, err := s.repo.ListImages(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return images, total, nil
}

// UpdateImageApproval is the only path that makes an image public.
func (s *GalleryService) UpdateImageApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.GalleryImage, error) {
	const op = "gallery_service.UpdateImageApproval"

	log := s.log.With(
		slog.String("op", op),
		slog.String("image_id", id.String()),
		slog.Bool("approved", approved),
	)

	if err := s.repo.UpdateImageApproval(ctx, id, approved); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		log.Error("failed to update approval", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	image, err := s.repo.GetImageByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateStats(image.EventID)
	log.Info("approval updated")

	return image, nil
}

// DeleteImage removes the row first, then the stored file. A storage failure
// after the row is gone only orphans CDN bytes, never the other way around.
func (s *GalleryService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "gallery_service.DeleteImage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("image_id", id.String()),
	)

	image, err := s.repo.GetImageByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteImage(ctx, id); err != nil {
		log.Error("failed to delete image row", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.Delete(ctx, image.FileName); err != nil {
			log.Warn("failed to delete stored file", slog.String("file", image.FileName), sl.Err(err))
		}
	}

	s.invalidateStats(image.EventID)
	log.Info("image deleted")

	return nil
}

// GetGalleryStats serves the dashboard aggregate, cached briefly in-process.
func (s *GalleryService) GetGalleryStats(ctx context.Context, eventID uuid.UUID) (models.GalleryStats, error) {
	const op = "gallery_service.GetGalleryStats"

	key := statsCacheKey(eventID)
	if cached, ok := s.statsCache.Get(key); ok {
		return cached.(models.GalleryStats), nil
	}

	stats, err := s.repo.GetGalleryStats(ctx, eventID)
	if err != nil {
		return models.GalleryStats{}, fmt.Errorf("%s: %w", op, err)
	}

	s.statsCache.Set(key, stats, statsCacheTTL)

	return stats, nil
}

func statsCacheKey(eventID uuid.UUID) string {
	return "gallery_stats:" + eventID.String()
}

func (s *GalleryService) invalidateStats(eventID uuid.UUID) {
	s.statsCache.Delete(statsCacheKey(eventID))
}
