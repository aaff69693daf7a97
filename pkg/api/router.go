package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	AllowedOrigins []string
	Debug          bool
}

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(svc Summariser, log *zap.Logger, cfg RouterConfig) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(RequestID())
	router.Use(Logger(log))
	router.Use(Recovery(log))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	h := NewHandler(svc, log)
	router.GET("/healthz", h.Health)
	router.POST("/summarise", h.Summarise)
	router.POST("/api/summarise", h.Summarise)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
