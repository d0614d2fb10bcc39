package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	"wedsite/internal/transport/http/dto"
	"wedsite/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetPublicEvent serves the guest page payload for a wwwId code.
func (r *Routers) GetPublicEvent(c echo.Context) error {
	const op = "http.routers.GetPublicEvent"

	log := r.log.With(
		slog.String("op", op),
		slog.String("www_id", c.Param("www_id")),
	)

	event, err := r.EventService.GetEventByWWWID(c.Request().Context(), c.Param("www_id"))
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get event"))
	}
	if event == nil {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPublicEventResponse(event)))
}

// GetPublicGallery lists approved images only, regardless of query params.
func (r *Routers) GetPublicGallery(c echo.Context) error {
	const op = "http.routers.GetPublicGallery"

	log := r.log.With(
		slog.String("op", op),
		slog.String("www_id", c.Param("www_id")),
	)

	event, err := r.EventService.GetEventByWWWID(c.Request().Context(), c.Param("www_id"))
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get event"))
	}
	if event == nil || !event.GalleryEnabled {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "gallery not found"))
	}

	approved := true
	filter := models.ImageFilter{
		EventID:  &event.ID,
		Approved: &approved,
	}
	page, limit := parsePagination(c)

	images, total, err := r.GalleryService.GetImagesPaginated(c.Request().Context(), filter, page, limit)
	if err != nil {
		log.Error("failed to list images", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to list images"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPaginatedResponse(images, total, page, limit)))
}

// GuestUpload accepts guest photos when the event's gallery is open. Files are
// stored, then recorded unapproved; they stay invisible until moderated.
func (r *Routers) GuestUpload(c echo.Context) error {
	const op = "http.routers.GuestUpload"

	log := r.log.With(
		slog.String("op", op),
		slog.String("www_id", c.Param("www_id")),
	)

	event, err := r.EventService.GetEventByWWWID(c.Request().Context(), c.Param("www_id"))
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get event"))
	}
	if event == nil {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
	}
	if !event.GalleryEnabled {
		return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("gallery_disabled", "gallery is not accepting uploads"))
	}

	album, err := r.guestAlbum(c, event)
	if err != nil {
		log.Error("failed to resolve guest album", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to resolve album"))
	}

	input, closers, err := r.buildUploadBatch(c, event.ID, nil)
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

	images := make([]*models.GalleryImage, 0, len(uploaded))
	for i, f := range uploaded {
		src := input.Files[i]
		image, err := r.GalleryService.UploadImage(c.Request().Context(), dto.UploadImageInput{
			AlbumID:          album.ID,
			EventID:          event.ID,
			FileName:         f.FileName,
			OriginalFilename: src.Filename,
			FileSize:         src.Size,
			MimeType:         src.ContentType,
			ImageURL:         f.CDNURL,
		}, nil)
		if err != nil {
			log.Error("failed to record image", slog.String("file", f.FileName), sl.Err(err))
			return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to record image"))
		}
		images = append(images, image)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(images))
}

// SubmitRSVP records a guest response when the event accepts them.
func (r *Routers) SubmitRSVP(c echo.Context) error {
	const op = "http.routers.SubmitRSVP"

	log := r.log.With(
		slog.String("op", op),
		slog.String("www_id", c.Param("www_id")),
	)

	event, err := r.EventService.GetEventByWWWID(c.Request().Context(), c.Param("www_id"))
	if err != nil {
		log.Error("failed to get event", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to get event"))
	}
	if event == nil {
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails("not_found", "event not found"))
	}
	if !event.RSVPEnabled {
		return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("rsvp_disabled", "event is not accepting responses"))
	}

	var req dto.SubmitRSVPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	rsvp, err := r.RSVPService.SubmitRSVP(c.Request().Context(), event.ID, req)
	if err != nil {
		log.Error("failed to submit rsvp", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "failed to submit rsvp"))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(rsvp))
}

const guestAlbumName = "Guest Uploads"

// guestAlbum picks the event's guest-upload album, creating it on first use.
func (r *Routers) guestAlbum(c echo.Context, event *models.Event) (*models.GalleryAlbum, error) {
	albums, err := r.GalleryService.GetEventAlbums(c.Request().Context(), event.ID)
	if err != nil {
		return nil, err
	}
	for i := range albums {
		if albums[i].Name == guestAlbumName {
			return &albums[i], nil
		}
	}
	return r.GalleryService.CreateAlbum(c.Request().Context(), event.ID, dto.CreateAlbumRequest{
		Name:     guestAlbumName,
		IsPublic: true,
	})
}

// buildUploadBatch assembles the service input from a multipart request.
// Returned closers must be closed after the batch is processed.
func (r *Routers) buildUploadBatch(c echo.Context, eventID uuid.UUID, uploadedBy *uuid.UUID) (dto.UploadBatchInput, []io.Closer, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return dto.UploadBatchInput{}, nil, errors.New("multipart form required")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return dto.UploadBatchInput{}, nil, errors.New("no files provided")
	}

	albumType := c.FormValue("album_type")
	if albumType == "" {
		albumType = "gallery"
	}
	mediaType := c.FormValue("media_type")
	if mediaType == "" {
		mediaType = "photo"
	}

	files := make([]dto.UploadFile, 0, len(fileHeaders))
	closers := make([]io.Closer, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, closer, err := dto.UploadFileFromMultipart(fh)
		if err != nil {
			closeAll(closers)
			return dto.UploadBatchInput{}, nil, err
		}
		files = append(files, file)
		closers = append(closers, closer)
	}

	return dto.UploadBatchInput{
		Files:      files,
		AlbumType:  albumType,
		MediaType:  mediaType,
		EventID:    &eventID,
		UploadedBy: uploadedBy,
	}, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
