package v1

import (
	"net/http"

	"github.com/AbdulBasithMohammed/CVPro/config"
	"github.com/AbdulBasithMohammed/CVPro/internal/delivery/http/middleware"
	"github.com/AbdulBasithMohammed/CVPro/internal/delivery/http/response"
	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
	"github.com/AbdulBasithMohammed/CVPro/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	ResumeUC  domain.ResumeUsecase
	AdminUC   domain.AdminUsecase
	ContactUC domain.ContactUsecase
	Tokens    *auth.TokenManager
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	NewAuthHandler(v1, deps.AuthUC)
	NewContactHandler(v1, deps.ContactUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))

	// Admin dashboard routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Tokens), middleware.AdminOnly())

	NewResumeHandler(v1, protected, deps.ResumeUC)
	NewAdminHandler(v1, admin, deps.AdminUC)

	return r
}
