package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appmw "wedsite/internal/middleware"
	httprouters "wedsite/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"wedsite/internal/domain/models"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// rsvpRateLimit caps public RSVP submissions per IP.
const (
	rsvpRateLimit  = 10
	rsvpRateWindow = time.Minute
)

type Server struct {
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	rdb     redis.Cmdable
	host    string
	port    string
	secret  string
}

func New(log *slog.Logger, secret string, host, port string, routers *httprouters.Routers, rdb redis.Cmdable) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	return &Server{
		log:     log,
		e:       e,
		routers: routers,
		rdb:     rdb,
		host:    host,
		port:    port,
		secret:  secret,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	public := s.e.Group("/api/event-id")
	{
		public.GET("/:www_id", s.routers.GetPublicEvent)
		public.GET("/:www_id/gallery", s.routers.GetPublicGallery)
		public.POST("/:www_id/gallery/upload", s.routers.GuestUpload)
		public.POST("/:www_id/rsvp", s.routers.SubmitRSVP, appmw.RateLimit(s.rdb, rsvpRateLimit, rsvpRateWindow))
	}

	api := s.e.Group("/api/v1")
	{
		api.POST("/login", s.routers.Login)
		api.POST("/refresh", s.routers.Refresh)
		api.POST("/register", s.routers.Register, appmw.JWT(s.secret), appmw.RequireRole(models.RoleSuperadmin))

		admin := api.Group("", appmw.JWT(s.secret))
		{
			admin.POST("/events", s.routers.CreateEvent)
			admin.GET("/events", s.routers.ListEvents)
			admin.GET("/events/:event_id", s.routers.GetEvent)
			admin.PATCH("/events/:event_id", s.routers.UpdateEvent)
			admin.DELETE("/events/:event_id", s.routers.DeleteEvent)
			admin.PATCH("/events/:event_id/sections/:section", s.routers.UpdateEventSection)

			admin.POST("/events/:event_id/albums", s.routers.CreateAlbum)
			admin.GET("/events/:event_id/albums", s.routers.GetEventAlbums)
			admin.GET("/albums/:album_id", s.routers.GetAlbum)
			admin.PATCH("/albums/:album_id", s.routers.UpdateAlbum)
			admin.DELETE("/albums/:album_id", s.routers.DeleteAlbum)

			admin.GET("/events/:event_id/images", s.routers.ListEventImages)
			admin.PATCH("/images/:image_id/approval", s.routers.UpdateImageApproval)
			admin.DELETE("/images/:image_id", s.routers.DeleteImage)
			admin.GET("/events/:event_id/gallery/stats", s.routers.GetGalleryStats)

			admin.POST("/events/:event_id/media", s.routers.UploadEventMedia)

			admin.GET("/events/:event_id/rsvps", s.routers.GetEventRSVPs)
			admin.GET("/events/:event_id/rsvps/stats", s.routers.GetRSVPStats)
		}
	}
}
