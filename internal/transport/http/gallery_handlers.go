package http

import (
	"errors"
	"log/slog"
	"net/http"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	galleryservice "wedsite/internal/services/gallery_service"
	"wedsite/internal/transport/http/dto"
	"wedsite/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (r *Routers) CreateAlbum(c echo.Context) error {
	const op = "http.routers.CreateAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	var req dto.CreateAlbumRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	album, err := r.GalleryService.CreateAlbum(c.Request().Context(), eventID, req)
	if err != nil {
		log.Error("failed to create album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to create album"))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(album))
}

func (r *Routers) GetEventAlbums(c echo.Context) error {
	const op = "http.routers.GetEventAlbums"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	albums, err := r.GalleryService.GetEventAlbums(c.Request().Context(), eventID)
	if err != nil {
		log.Error("failed to list albums", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to list albums"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(albums))
}

func (r *Routers) GetAlbum(c echo.Context) error {
	const op = "http.routers.GetAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	albumID, err := parseUUIDParam(c, "album_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album id"))
	}

	album, err := r.GalleryService.GetAlbumByID(c.Request().Context(), albumID)
	if err != nil {
		log.Error("failed to get album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get album"))
	}
	if album == nil {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "album not found"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(album))
}

func (r *Routers) UpdateAlbum(c echo.Context) error {
	const op = "http.routers.UpdateAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	albumID, err := parseUUIDParam(c, "album_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album id"))
	}

	var req dto.UpdateAlbumRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	album, err := r.GalleryService.UpdateAlbum(c.Request().Context(), albumID, req)
	if err != nil {
		if errors.Is(err, galleryservice.ErrAlbumNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "album not found"))
		}
		log.Error("failed to update album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to update album"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(album))
}

func (r *Routers) DeleteAlbum(c echo.Context) error {
	const op = "http.routers.DeleteAlbum"

	log := r.log.With(
		slog.String("op", op),
	)

	albumID, err := parseUUIDParam(c, "album_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album id"))
	}

	if err := r.GalleryService.DeleteAlbum(c.Request().Context(), albumID); err != nil {
		if errors.Is(err, galleryservice.ErrAlbumNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "album not found"))
		}
		log.Error("failed to delete album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to delete album"))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "album deleted"})
}

func (r *Routers) ListEventImages(c echo.Context) error {
	const op = "http.routers.ListEventImages"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	filter := models.ImageFilter{EventID: &eventID}
	if raw := c.QueryParam("approved"); raw != "" {
		approved := raw == "true"
		filter.Approved = &approved
	}
	if raw := c.QueryParam("album_id"); raw != "" {
		albumID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid album id"))
		}
		filter.AlbumID = &albumID
	}
	filter.DateFrom = parseDate(c.QueryParam("date_from"))
	filter.DateTo = parseDate(c.QueryParam("date_to"))

	page, limit := parsePagination(c)

	images, total, err := r.GalleryService.GetImagesPaginated(c.Request().Context(), filter, page, limit)
	if err != nil {
		log.Error("failed to list images", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to list images"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPaginatedResponse(images, total, page, limit)))
}

func (r *Routers) UpdateImageApproval(c echo.Context) error {
	const op = "http.routers.UpdateImageApproval"

	log := r.log.With(
		slog.String("op", op),
	)

	imageID, err := parseUUIDParam(c, "image_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid image id"))
	}

	var req dto.UpdateApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	image, err := r.GalleryService.UpdateImageApproval(c.Request().Context(), imageID, req.IsApproved)
	if err != nil {
		if errors.Is(err, galleryservice.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "image not found"))
		}
		log.Error("failed to update approval", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to update approval"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(image))
}

func (r *Routers) DeleteImage(c echo.Context) error {
	const op = "http.routers.DeleteImage"

	log := r.log.With(
		slog.String("op", op),
	)

	imageID, err := parseUUIDParam(c, "image_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid image id"))
	}

	if err := r.GalleryService.DeleteImage(c.Request().Context(), imageID); err != nil {
		if errors.Is(err, galleryservice.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "image not found"))
		}
		log.Error("failed to delete image", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to delete image"))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "image deleted"})
}

func (r *Routers) GetGalleryStats(c echo.Context) error {
	const op = "http.routers.GetGalleryStats"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	stats, err := r.GalleryService.GetGalleryStats(c.Request().Context(), eventID)
	if err != nil {
		log.Error("failed to get gallery stats", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get gallery stats"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(stats))
}

// UploadEventMedia stores a batch of files for an event and returns their CDN
// URLs. Database rows for gallery images are created separately.
func (r *Routers) UploadEventMedia(c echo.Context) error {
	const op = "http.routers.UploadEventMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	eventID, err := parseUUIDParam(c, "event_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "invalid event id"))
	}

	userID, _, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	input, closers, err := r.buildUploadBatch(c, eventID, &userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}
	defer closeAll(closers)

	uploaded, err := r.MediaService.UploadFiles(c.Request().Context(), input)
	if err != nil {
		if models.IsValidationError(err) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("validation_failed", err.Error()))
		}
		log.Error("failed to upload media", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to upload media"))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(uploaded))
}
