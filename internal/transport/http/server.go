package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"wedsite/internal/domain/models"
	"wedsite/internal/lib/logger/sl"
	"wedsite/internal/middleware"
	userservice "wedsite/internal/services/user_service"
	"wedsite/internal/transport/http/dto"
	"wedsite/internal/transport/http/dto/request"
	"wedsite/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	RegisterUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type AuthService interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, req dto.CreateEventRequest, organizerID *uuid.UUID) (*models.Event, error)
	GetEventsPaginated(ctx context.Context, userID uuid.UUID, role models.Role, filter models.EventFilter, page, limit int) ([]models.Event, int, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetEventByWWWID(ctx context.Context, wwwID string) (*models.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error)
	UpdateSection(ctx context.Context, id uuid.UUID, section string, partial json.RawMessage) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	CreateAlbum(ctx context.Context, eventID uuid.UUID, req dto.CreateAlbumRequest) (*models.GalleryAlbum, error)
	GetAlbumByID(ctx context.Context, id uuid.UUID) (*models.GalleryAlbum, error)
	GetEventAlbums(ctx context.Context, eventID uuid.UUID) ([]models.GalleryAlbum, error)
	UpdateAlbum(ctx context.Context, id uuid.UUID, req dto.UpdateAlbumRequest) (*models.GalleryAlbum, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, input dto.UploadImageInput, uploadedBy *uuid.UUID) (*models.GalleryImage, error)
	GetImagesPaginated(ctx context.Context, filter models.ImageFilter, page, limit int) ([]models.GalleryImage, int, error)
	UpdateImageApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.GalleryImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	GetGalleryStats(ctx context.Context, eventID uuid.UUID) (models.GalleryStats, error)
}

type MediaService interface {
	UploadFiles(ctx context.Context, input dto.UploadBatchInput) ([]dto.UploadedFile, error)
	DeleteFile(ctx context.Context, path string) error
	ListFiles(ctx context.Context, dir string) ([]string, error)
}

type RSVPService interface {
	SubmitRSVP(ctx context.Context, eventID uuid.UUID, req dto.SubmitRSVPRequest) (*models.RSVP, error)
	GetEventRSVPs(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.RSVP, int, error)
	GetRSVPStats(ctx context.Context, eventID uuid.UUID) (models.RSVPStats, error)
}

type Routers struct {
	log            *slog.Logger
	UserService    UserService
	AuthService    AuthService
	EventService   EventService
	GalleryService GalleryService
	MediaService   MediaService
	RSVPService    RSVPService
}

func NewRouters(
	log *slog.Logger,
	userService UserService,
	authService AuthService,
	eventService EventService,
	galleryService GalleryService,
	mediaService MediaService,
	rsvpService RSVPService,
) *Routers {
	return &Routers{
		log:            log,
		UserService:    userService,
		AuthService:    authService,
		EventService:   eventService,
		GalleryService: galleryService,
		MediaService:   mediaService,
		RSVPService:    rsvpService,
	}
}

var (
	ErrInvalidUUID = errors.New("not valid UUID")
)

func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	user, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	tokens, err := r.AuthService.GenerateTokens(c.Request().Context(), user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"user_id":       tokens.UserID.String(),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}))
}

func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_register_request", err.Error()))
	}

	userID, err := r.UserService.RegisterUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, userservice.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails("internal_error", "Internal server error"))
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]uuid.UUID{
		"user_id": userID,
	}))
}

func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("validation bind", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	newTokens, err := r.AuthService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Error("error refresh tokens", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("authentication_failed", "invalid refresh token"))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(newTokens))
}

// currentUser extracts the identity the JWT middleware stored on the context.
func currentUser(c echo.Context) (uuid.UUID, models.Role, error) {
	uid, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(models.Role)

	userID, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, "", ErrInvalidUUID
	}
	return userID, role, nil
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}
	return id, nil
}

func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// parseDate accepts RFC 3339 or plain YYYY-MM-DD filter values.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}
