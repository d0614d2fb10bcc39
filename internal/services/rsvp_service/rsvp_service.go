package services

import (
	"context"
	"fmt"
	"log/slog"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	"wedsite/internal/repository"
	"wedsite/internal/transport/http/dto"

	"github.com/google/uuid"
)

type RSVPService struct {
	log  *slog.Logger
	repo repository.RSVPRepository
}

func NewRSVPService(log *slog.Logger, repo repository.RSVPRepository) *RSVPService {
	return &RSVPService{log: log, repo: repo}
}

// SubmitRSVP records one guest response. The rsvpEnabled gate lives with the
// caller, which already resolved the event.
func (s *RSVPService) SubmitRSVP(ctx context.Context, eventID uuid.UUID, req dto.SubmitRSVPRequest) (*models.RSVP, error) {
	const op = "rsvp_service.SubmitRSVP"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", eventID.String()),
	)

	status := models.RSVPStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%s: invalid status %q", op, req.Status)
	}

	rsvp := &models.RSVP{
		ID:          uuid.New(),
		EventID:     eventID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		Status:      status,
		PlusOnes:    req.PlusOnes,
		MenuChoices: req.MenuChoices,
		Note:        req.Note,
	}

	created, err := s.repo.CreateRSVP(ctx, rsvp)
	if err != nil {
		log.Error("failed to save rsvp", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("rsvp recorded", slog.String("status", req.Status))

	return created, nil
}

func (s *RSVPService) GetEventRSVPs(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.RSVP, int, error) {
	const op = "rsvp_service.GetEventRSVPs"

	rsvps, total, err := s.repo.GetEventRSVPs(ctx, eventID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return rsvps, total, nil
}

func (s *RSVPService) GetRSVPStats(ctx context.Context, eventID uuid.UUID) (models.RSVPStats, error) {
	const op = "rsvp_service.GetRSVPStats"

	stats, err := s.repo.GetRSVPStats(ctx, eventID)
	if err != nil {
		return models.RSVPStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
