package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/config"
	_ "github.com/AbdulBasithMohammed/CVPro/docs" // Important for Swagger
	v1 "github.com/AbdulBasithMohammed/CVPro/internal/delivery/http/v1"
	"github.com/AbdulBasithMohammed/CVPro/internal/repository/postgres"
	"github.com/AbdulBasithMohammed/CVPro/internal/usecase"
	"github.com/AbdulBasithMohammed/CVPro/pkg/ai"
	"github.com/AbdulBasithMohammed/CVPro/pkg/auth"
	"github.com/AbdulBasithMohammed/CVPro/pkg/database"
	"github.com/AbdulBasithMohammed/CVPro/pkg/email"
	"github.com/AbdulBasithMohammed/CVPro/pkg/hash"
	"github.com/AbdulBasithMohammed/CVPro/pkg/logger"
	"github.com/AbdulBasithMohammed/CVPro/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           CVPro API
// @version         1.0
// @description     Resume builder backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting CVPro backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.RunMigrations(migrateCtx, cfg.DBUrl); err != nil {
		cancelMigrate()
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	cancelMigrate()

	// 4. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	loginLogRepo := postgres.NewLoginLogRepository(dbPool)

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - password reset and contact form will be unavailable")
	}

	// 6. Register custom request validators with gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 7. Setup UseCases
	hasher := hash.NewBcryptHasher()
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	geminiClient := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	authUC := usecase.NewAuthUsecase(userRepo, loginLogRepo, hasher, emailService, googleVerifier, tokens, cfg.StrictUsernameAllocation)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, geminiClient)
	adminUC := usecase.NewAdminUsecase(adminRepo, userRepo, resumeRepo, loginLogRepo, hasher, tokens)
	contactUC := usecase.NewContactUsecase(emailService)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:    authUC,
		ResumeUC:  resumeUC,
		AdminUC:   adminUC,
		ContactUC: contactUC,
		Tokens:    tokens,
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
