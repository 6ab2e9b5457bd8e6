package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cloudstore/internal/blob"
	"cloudstore/internal/config"
	"cloudstore/internal/database"
	"cloudstore/internal/domain/auth"
	"cloudstore/internal/domain/file"
	"cloudstore/internal/domain/folder"
	"cloudstore/internal/domain/quota"
	"cloudstore/internal/middleware"
	jwtsvc "cloudstore/internal/pkg/jwt"
	"cloudstore/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.IsDevelopment())

	if cfg.JWTSecret == "" {
		logger.Log.Fatal().Msg("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to migrate database")
	}

	blobs, err := blob.NewLocalStore(cfg.BlobDir)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to initialize blob store")
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	ledger := quota.NewLedger(quota.MaxFileSize, quota.MaxStorageSize)

	userRepo := auth.NewUserRepository(db)
	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	folderService := folder.NewService(db, ledger, blobs)
	folderHandler := folder.NewHandler(folderService)

	fileService := file.NewService(db, ledger, blobs)
	fileHandler := file.NewHandler(fileService)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)

		// protected
		protected := api.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			folder.RegisterRoutes(protected, folderHandler)
			file.RegisterRoutes(protected, fileHandler)
		}
	}

	logger.Log.Info().Str("addr", cfg.ListenAddr).Msg("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Log.Fatal().Err(err).Msg("server stopped")
	}
}
