package httpx

import (
	"net/http"
	"slices"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// SessionKey - ключ gin-контекста, под которым хендлер оставляет id сессии потребления.
const SessionKey = "bridge.session_id"

// RequestLogger - middleware для логирования команд моста.
// Пути из skip (служебные и долгоживущий поток событий) не логируются.
// 5xx пишутся как ошибки, 4xx - как предупреждения.
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if slices.Contains(skip, path) {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		tr, _ := ctxmeta.TraceIDFromContext(ctx)
		session := c.GetString(SessionKey)

		logf := log.Infof
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}

		logf(
			ctx,
			"request id=%s trace=%s session=%s method=%s path=%s query=%q status=%d duration=%s size=%d errors=%q",
			rid, tr, session,
			c.Request.Method,
			path,
			c.Request.URL.RawQuery,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
			c.Errors.ByType(gin.ErrorTypeAny).String(),
		)
	}
}
