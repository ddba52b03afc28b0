package rest

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/bridge"
	"github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/internal/usecase"
	"github.com/Gunvolt24/kafkabridge/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	defaultCount = 1
	maxCount     = usecase.DefaultMaxSendCount
)

// EventStream - источник SSE-потока (sse.Hub).
type EventStream interface {
	ServeSSE(c *gin.Context)
}

type Handler struct {
	service ports.BridgeService
	events  EventStream
	log     ports.Logger
	timeout time.Duration
}

// NewHandler - timeout ограничивает команды send/start/stop; 0 - без ограничения.
// events может быть nil, тогда /api/events не регистрируется.
func NewHandler(service ports.BridgeService, events EventStream, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, events: events, log: log, timeout: timeout}
}

// NewRouter - otelService пустой, если трейсинг выключен.
func NewRouter(h *Handler, staticDir, otelService string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelService != "" {
		r.Use(otelgin.Middleware(otelService, otelgin.WithFilter(traceable)))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log, "/metrics", "/ping", "/api/events"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/messages", h.sendMessages)
	api.POST("/consumer/start", h.startConsuming)
	api.POST("/consumer/stop", h.stopConsuming)
	api.GET("/topics", h.listTopics)
	if h.events != nil {
		api.GET("/events", h.events.ServeSSE)
	}

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}

	return r
}

func (h *Handler) sendMessages(c *gin.Context) {
	count, err := httpx.ParseCount(c, defaultCount, maxCount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	res, err := h.service.Send(ctx, count)
	if err != nil {
		h.log.Errorf(ctx, "Send failed count=%d err=%v", count, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

func (h *Handler) startConsuming(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	id, err := h.service.StartConsuming(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Set(httpx.SessionKey, id)
	c.JSON(http.StatusAccepted, gin.H{"status": "started", "session_id": id})
}

func (h *Handler) stopConsuming(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.service.StopConsuming(ctx); err != nil {
		h.log.Errorf(ctx, "StopConsuming failed err=%v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}

// listTopics - без handler timeout: у запроса метаданных свой (60 с по умолчанию).
func (h *Handler) listTopics(c *gin.Context) {
	ctx := c.Request.Context()

	topics, err := h.service.ListTopics(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, topics)
}

func (h *Handler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// statusFor - HTTP-код по виду ошибки.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidCount), errors.Is(err, httpx.ErrBadParam):
		return http.StatusBadRequest
	case errors.Is(err, bridge.ErrAlreadyConsuming):
		return http.StatusConflict
	case errors.Is(err, kafka.ErrMetadataTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, kafka.ErrMetadataTransport), errors.Is(err, kafka.ErrSendTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func traceable(r *http.Request) bool {
	switch r.URL.Path {
	case "/metrics", "/ping", "/api/events":
		return false
	}
	return true
}
