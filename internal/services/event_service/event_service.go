package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	"wedsite/internal/lib/shortcode"
	"wedsite/internal/repository"
	"wedsite/internal/storage/bunny"
	"wedsite/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrUnknownSection = errors.New("unknown section")
)

// publicCacheTTL bounds how stale a guest-facing event page may be after an
// organizer edit that raced the cache.
const publicCacheTTL = time.Minute

type EventService struct {
	log         *slog.Logger
	repo        repository.EventRepository
	galleryRepo repository.GalleryRepository
	fileStorage bunny.FileStorage
	cache       redis.Cmdable
}

func NewEventService(
	log *slog.Logger,
	repo repository.EventRepository,
	galleryRepo repository.GalleryRepository,
	fileStorage bunny.FileStorage,
	cache redis.Cmdable,
) *EventService {
	return &EventService{
		log:         log,
		repo:        repo,
		galleryRepo: galleryRepo,
		fileStorage: fileStorage,
		cache:       cache,
	}
}

// CreateEvent writes a new event with the starter section documents. The
// public code is generated blind; on the unlikely collision the unique
// constraint fires and one regeneration is attempted.
func (s *EventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest, organizerID *uuid.UUID) (*models.Event, error) {
	const op = "event_service.CreateEvent"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	log.Info("creating event")

	event := &models.Event{
		ID:             uuid.New(),
		WWWID:          shortcode.New(),
		Title:          req.Title,
		CoupleNames:    req.CoupleNames,
		EventDate:      req.EventDate,
		Venue:          req.Venue,
		Description:    req.Description,
		OrganizerID:    organizerID,
		Status:         models.EventStatusPlanned,
		GalleryEnabled: req.GalleryEnabled,
		RSVPEnabled:    req.RSVPEnabled,
		Visibility:     models.DefaultSectionVisibility(),
		Content:        models.DefaultSectionContent(req.Title, req.Venue, req.EventDate),
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if repository.IsUniqueViolation(err) {
		log.Warn("www_id collision, regenerating", slog.String("www_id", event.WWWID))
		event.WWWID = shortcode.New()
		created, err = s.repo.CreateEvent(ctx, event)
	}
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created.Normalize()
	log.Info("event created", slog.String("id", created.ID.String()), slog.String("www_id", created.WWWID))

	return created, nil
}

// GetEventsPaginated lists events visible to the caller: organizers see only
// their own rows, superadmins see everything.
func (s *EventService) GetEventsPaginated(
	ctx context.Context,
	userID uuid.UUID,
	role models.Role,
	filter models.EventFilter,
	page, limit int,
) ([]models.Event, int, error) {
	const op = "event_service.GetEventsPaginated"

	if role != models.RoleSuperadmin {
		filter.OrganizerID = &userID
	}

	events, total, err := s.repo.ListEvents(ctx, filter, page, limit)
	if err != nil {
		s.log.Error("failed to list events", slog.String("op", op), sl.Err(err))
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	for i := range events {
		events[i].Normalize()
	}

	return events, total, nil
}

// GetEventByID returns nil (not an error) when no row matches.
func (s *EventService) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const op = "event_service.GetEventByID"

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event.Normalize()
	return event, nil
}

// GetEventByWWWID serves every guest page load, so hits are cached briefly.
// A missing code resolves to nil, never an error.
func (s *EventService) GetEventByWWWID(ctx context.Context, wwwID string) (*models.Event, error) {
	const op = "event_service.GetEventByWWWID"

	if cached := s.cachedEvent(ctx, wwwID); cached != nil {
		return cached, nil
	}

	event, err := s.repo.GetEventByWWWID(ctx, wwwID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event.Normalize()
	s.cacheEvent(ctx, event)

	return event, nil
}

// UpdateEvent applies a partial update. A section document present in the
// patch replaces the stored one wholesale; see UpdateSection for the
// merge-aware path.
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	const op = "event_service.UpdateEvent"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%s: invalid status %q", op, *patch.Status)
	}

	if err := s.repo.UpdateEvent(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		log.Error("failed to update event", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event.Normalize()
	s.invalidateEvent(ctx, event.WWWID)
	log.Info("event updated")

	return event, nil
}

// UpdateSection merges a partial payload into one named section server-side,
// so two editors touching different sections no longer overwrite each other's
// whole document.
func (s *EventService) UpdateSection(ctx context.Context, id uuid.UUID, section string, partial json.RawMessage) (*models.Event, error) {
	const op = "event_service.UpdateSection"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
		slog.String("section", section),
	)

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	event.Normalize()

	target := event.Content.Section(section)
	if target == nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrUnknownSection, section)
	}

	// Unmarshalling over the existing sub-document keeps fields absent from
	// the payload untouched.
	if err := json.Unmarshal(partial, target); err != nil {
		return nil, fmt.Errorf("%s: invalid section payload: %w", op, err)
	}

	patch := models.EventPatch{Content: event.Content}
	if err := s.repo.UpdateEvent(ctx, id, patch); err != nil {
		log.Error("failed to persist section", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateEvent(ctx, event.WWWID)
	log.Info("section updated")

	return event, nil
}

// DeleteEvent removes the event and its gallery/RSVP rows in one transaction,
// then best-effort deletes the stored files. A storage failure leaves orphans
// on the CDN, which is logged and tolerated.
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "event_service.DeleteEvent"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", id.String()),
	)

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	eventID := event.ID
	images, _, err := s.galleryRepo.ListImages(ctx, models.ImageFilter{EventID: &eventID}, 1, 100)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		log.Error("failed to delete event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateEvent(ctx, event.WWWID)

	if s.fileStorage != nil {
		for _, img := range images {
			if err := s.fileStorage.Delete(ctx, img.FileName); err != nil {
				log.Warn("failed to delete stored file", slog.String("file", img.FileName), sl.Err(err))
			}
		}
	}

	log.Info("event deleted", slog.Int("files_removed", len(images)))

	return nil
}

func eventCacheKey(wwwID string) string {
	return "event:www:" + wwwID
}

func (s *EventService) cachedEvent(ctx context.Context, wwwID string) *models.Event {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, eventCacheKey(wwwID)).Bytes()
	if err != nil {
		return nil
	}
	var event models.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil
	}
	return &event
}

func (s *EventService) cacheEvent(ctx context.Context, event *models.Event) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, eventCacheKey(event.WWWID), raw, publicCacheTTL).Err(); err != nil {
		s.log.Warn("failed to cache event", sl.Err(err))
	}
}

func (s *EventService) invalidateEvent(ctx context.Context, wwwID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, eventCacheKey(wwwID)).Err(); err != nil {
		s.log.Warn("failed to invalidate event cache", sl.Err(err))
	}
}
