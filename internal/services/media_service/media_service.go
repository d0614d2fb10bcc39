package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"wedsite/internal/config"
	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	"wedsite/internal/metrics"
	"wedsite/internal/storage/bunny"
	"wedsite/internal/transport/http/dto"
)

const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

var photoMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/avif": {},
}

var videoMimeTypes = map[string]struct{}{
	"video/mp4":       {},
	"video/quicktime": {},
	"video/x-msvideo": {},
	"video/webm":      {},
}

type MediaService struct {
	log         *slog.Logger
	fileStorage bunny.FileStorage
	limits      config.UploadConfig
}

func NewMediaService(log *slog.Logger, fileStorage bunny.FileStorage, limits config.UploadConfig) *MediaService {
	return &MediaService{
		log:         log,
		fileStorage: fileStorage,
		limits:      limits,
	}
}

// ValidateFile checks one file against the size and MIME limits for its media
// type. Every violation gets its own message so the client can show all of
// them at once.
func (s *MediaService) ValidateFile(file dto.UploadFile, mediaType string) error {
	var errs []string

	switch mediaType {
	case MediaTypePhoto:
		if file.Size > s.limits.MaxPhotoSize {
			errs = append(errs, fmt.Sprintf("%s: photo exceeds %d bytes (got %d)", file.Filename, s.limits.MaxPhotoSize, file.Size))
		}
		if _, ok := photoMimeTypes[file.ContentType]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unsupported photo type %q", file.Filename, file.ContentType))
		}
	case MediaTypeVideo:
		if file.Size > s.limits.MaxVideoSize {
			errs = append(errs, fmt.Sprintf("%s: video exceeds %d bytes (got %d)", file.Filename, s.limits.MaxVideoSize, file.Size))
		}
		if _, ok := videoMimeTypes[file.ContentType]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unsupported video type %q", file.Filename, file.ContentType))
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown media type %q", mediaType))
	}

	if len(errs) > 0 {
		return &models.ValidationError{Errors: errs}
	}
	return nil
}

// UploadFiles stores a batch sequentially. Validation runs for the whole batch
// up front, and a mid-batch storage failure rolls back the files already
// stored, so the caller observes all-or-nothing.
func (s *MediaService) UploadFiles(ctx context.Context, input dto.UploadBatchInput) ([]dto.UploadedFile, error) {
	const op = "media_service.UploadFiles"

	log := s.log.With(
		slog.String("op", op),
		slog.String("album_type", input.AlbumType),
		slog.String("media_type", input.MediaType),
		slog.Int("files", len(input.Files)),
	)

	var errs []string
	for _, file := range input.Files {
		if err := s.ValidateFile(file, input.MediaType); err != nil {
			if ve, ok := err.(*models.ValidationError); ok {
				errs = append(errs, ve.Errors...)
			} else {
				errs = append(errs, err.Error())
			}
		}
	}
	if len(errs) > 0 {
		metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, &models.ValidationError{Errors: errs}
	}

	uploaded := make([]dto.UploadedFile, 0, len(input.Files))
	for _, file := range input.Files {
		path := s.buildPath(input, file.Filename)

		if err := s.fileStorage.Upload(ctx, path, file.Content, file.Size, file.ContentType); err != nil {
			log.Error("upload failed, rolling back batch",
				slog.String("file", file.Filename),
				slog.Int("stored", len(uploaded)),
				sl.Err(err),
			)
			s.rollback(ctx, uploaded)
			metrics.MediaUploadsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("%s: upload %s: %w", op, file.Filename, err)
		}

		uploaded = append(uploaded, dto.UploadedFile{
			FileName: path,
			CDNURL:   s.fileStorage.CdnURL(path),
		})
	}

	metrics.MediaUploadsTotal.WithLabelValues("success").Inc()
	log.Info("batch stored", slog.Int("uploaded", len(uploaded)))

	return uploaded, nil
}

func (s *MediaService) DeleteFile(ctx context.Context, path string) error {
	const op = "media_service.DeleteFile"

	if err := s.fileStorage.Delete(ctx, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *MediaService) ListFiles(ctx context.Context, dir string) ([]string, error) {
	const op = "media_service.ListFiles"

	names, err := s.fileStorage.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return names, nil
}

// rollback deletes the files a failed batch already stored. Failures here are
// logged only; the batch error is what the caller needs to see.
func (s *MediaService) rollback(ctx context.Context, uploaded []dto.UploadedFile) {
	for _, f := range uploaded {
		if err := s.fileStorage.Delete(ctx, f.FileName); err != nil {
			s.log.Warn("rollback delete failed", slog.String("file", f.FileName), sl.Err(err))
		}
	}
}

// buildPath lays files out as {events/{id}/}{albumType}/{mediaType}/{name}.
func (s *MediaService) buildPath(input dto.UploadBatchInput, originalName string) string {
	parts := make([]string, 0, 4)
	if input.EventID != nil {
		parts = append(parts, "events", input.EventID.String())
	}
	parts = append(parts, input.AlbumType, input.MediaType, generateFileName(originalName))
	return strings.Join(parts, "/")
}

// generateFileName keeps only the extension of the client-supplied name.
func generateFileName(originalName string) string {
	buf := make([]byte, 4)
	rand.Read(buf)

	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), hex.EncodeToString(buf), ext)
}
