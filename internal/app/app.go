package app

import (
	"context"
	"log/slog"

	httpapp "wedsite/internal/app/http"
	"wedsite/internal/config"
	"wedsite/internal/repository"
	eventservice "wedsite/internal/services/event_service"
	galleryservice "wedsite/internal/services/gallery_service"
	mediaservice "wedsite/internal/services/media_service"
	rsvpservice "wedsite/internal/services/rsvp_service"
	tokenservice "wedsite/internal/services/token_service"
	userservice "wedsite/internal/services/user_service"
	"wedsite/internal/storage/bunny"
	storage "wedsite/internal/storage/redis"
	httprouters "wedsite/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	repo       *repository.Repository
	redis      *storage.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	repo, err := repository.NewRepository(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	rdb := storage.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	fileStorage := bunny.New(cfg.Storage)

	tokenRepo := repository.NewRedisTokenRepo(rdb)

	userSvc := userservice.NewUserService(log, repo.User)
	tokenSvc := tokenservice.NewTokenService(tokenRepo, cfg.Auth)
	eventSvc := eventservice.NewEventService(log, repo.Event, repo.Gallery, fileStorage, rdb.Client)
	gallerySvc := galleryservice.NewGalleryService(log, repo.Gallery, fileStorage)
	mediaSvc := mediaservice.NewMediaService(log, fileStorage, cfg.Upload)
	rsvpSvc := rsvpservice.NewRSVPService(log, repo.RSVP)

	routers := httprouters.NewRouters(log, userSvc, tokenSvc, eventSvc, gallerySvc, mediaSvc, rsvpSvc)

	server := httpapp.New(log, cfg.Auth.Secret, cfg.HTTP.Host, cfg.HTTP.Port, routers, rdb.Client)

	return &App{
		HTTPServer: server,
		repo:       repo,
		redis:      rdb,
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		panic(err)
	}
	a.repo.Close()
	a.redis.Close()
}
