package api

import (
	"context"
	"errors"
	"net/http"

	"blog-summariser/pkg/orchestrator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Summariser runs one summarise request.
type Summariser interface {
	Handle(ctx context.Context, req orchestrator.Request) (*orchestrator.Result, error)
}

// Handler serves the summarise endpoint.
type Handler struct {
	svc Summariser
	log *zap.Logger
}

func NewHandler(svc Summariser, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// Summarise handles POST /summarise.
func (h *Handler) Summarise(c *gin.Context) {
	var req orchestrator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, orchestrator.Unhandled(err))
		return
	}

	res, err := h.svc.Handle(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var oerr *orchestrator.Error
	if !errors.As(err, &oerr) {
		oerr = orchestrator.Unhandled(err)
	}
	c.Error(err)

	fields := []zap.Field{
		zap.String("kind", string(oerr.Kind)),
		zap.Int("status", oerr.Status),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	}
	if oerr.Status >= http.StatusInternalServerError {
		h.log.Error("summarise failed", fields...)
	} else {
		h.log.Info("summarise rejected", fields...)
	}

	c.JSON(oerr.Status, gin.H{"error": oerr.Message})
}
