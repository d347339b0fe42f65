package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/app/server"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/config"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/assignment"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/auth"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/bid"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/user"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/storage/minio_storage"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/storage/postgres"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	minioClient, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	artifacts, err := minio_storage.NewArtifactStorage(minioClient, cfg.Minio.ArtifactsBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing artifacts bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	assignmentRepo := postgres.NewAssignmentPostgres(pg.Pool)
	bidRepo := postgres.NewBidPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	u := service.Collection{
		AuthService:       auth.NewAuthService(log, jwtManager, userRepo, tokenRepo),
		UserService:       user.NewUserService(log, userRepo),
		AssignmentService: assignment.NewService(log, assignmentRepo, artifacts),
		BidService:        bid.NewService(log, bidRepo, assignmentRepo),
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("HTTP server listening", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}

	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
