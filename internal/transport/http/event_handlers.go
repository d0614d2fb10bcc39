package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	eventservice "wedsite/internal/services/event_service"
	"wedsite/internal/transport/http/dto"
	"wedsite/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

func (r *Routers) CreateEvent(c echo.Context) error {
	const op = "http.routers.CreateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateEventRequest

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	userID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	event, err := r.EventService.CreateEvent(c.Request().Context(), req, &userID)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to create event"))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(event))
}

func (r *Routers) ListEvents(c echo.Context) error {
	const op = "http.routers.ListEvents"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, role, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	filter := models.EventFilter{
		Status:   models.EventStatus(c.QueryParam("status")),
		DateFrom: parseDate(c.QueryParam("date_from")),
		DateTo:   parseDate(c.QueryParam("date_to")),
		Search:   c.QueryParam("search"),
	}
	page, limit := parsePagination(c)

	events, total, err := r.EventService.GetEventsPaginated(c.Request().Context(), userID, role, filter, page, limit)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to list events"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPaginatedResponse(events, total, page, limit)))
}

func (r *Routers) GetEvent(c echo.Context) error {
	const op = "http.routers.GetEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	event, err := r.EventService.GetEventByID(c.Request().Context(), eventID)
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get event"))
	}
	if event == nil {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

func (r *Routers) UpdateEvent(c echo.Context) error {
	const op = "http.routers.UpdateEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	var patch models.EventPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	event, err := r.EventService.UpdateEvent(c.Request().Context(), eventID, patch)
	if err != nil {
		if errors.Is(err, eventservice.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
		}
		log.Error("failed to update event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to update event"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

func (r *Routers) UpdateEventSection(c echo.Context) error {
	const op = "http.routers.UpdateEventSection"

	log := r.log.With(
		slog.String("op", op),
		slog.String("section", c.Param("section")),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || len(body) == 0 {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	event, err := r.EventService.UpdateSection(c.Request().Context(), eventID, c.Param("section"), json.RawMessage(body))
	if err != nil {
		switch {
		case errors.Is(err, eventservice.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
		case errors.Is(err, eventservice.ErrUnknownSection):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown section"))
		default:
			log.Error("failed to update section", sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to update section"))
		}
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(event))
}

func (r *Routers) DeleteEvent(c echo.Context) error {
	const op = "http.routers.DeleteEvent"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	if err := r.EventService.DeleteEvent(c.Request().Context(), eventID); err != nil {
		if errors.Is(err, eventservice.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
		}
		log.Error("failed to delete event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to delete event"))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "event deleted"})
}

func (r *Routers) GetEventRSVPs(c echo.Context) error {
	const op = "http.routers.GetEventRSVPs"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	page, limit := parsePagination(c)

	rsvps, total, err := r.RSVPService.GetEventRSVPs(c.Request().Context(), eventID, page, limit)
	if err != nil {
		log.Error("failed to list rsvps", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to list rsvps"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPaginatedResponse(rsvps, total, page, limit)))
}

func (r *Routers) GetRSVPStats(c echo.Context) error {
	const op = "http.routers.GetRSVPStats"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	stats, err := r.RSVPService.GetRSVPStats(c.Request().Context(), eventID)
	if err != nil {
		log.Error("failed to get rsvp stats", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get rsvp stats"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(stats))
}
