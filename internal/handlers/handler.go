package handlers

import (
	"net/http"

	_ "auth_backend/docs"
	"auth_backend/internal/logger"
	"auth_backend/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// DefaultCORSOrigin is the only browser origin allowed when none is configured.
const DefaultCORSOrigin = "http://localhost:3000"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	corsOrigin string
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, log *logger.Logger, corsOrigin string) *Handler {
	if corsOrigin == "" {
		corsOrigin = DefaultCORSOrigin
	}
	return &Handler{services: services, log: log, corsOrigin: corsOrigin}
}

// InitRoutes builds the gin engine and wraps it in the CORS policy.
func (h *Handler) InitRoutes() http.Handler {
	return h.withCORS(h.newRouter())
}

func (h *Handler) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		h.requestIDMiddleware,
		h.accessLogMiddleware,
		h.jsonBodyMiddleware,
		h.cookieParserMiddleware,
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerSystemRoutes(router)

	return router
}

func (h *Handler) registerSystemRoutes(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
}
