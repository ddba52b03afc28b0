package httpx

import (
	"github.com/Gunvolt24/kafkabridge/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID - заголовок корреляции; для /api/events его значение становится id SSE-клиента.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen - предел длины принятого от клиента id.
const maxRequestIDLen = 64

// RequestIDMiddleware берёт X-Request-ID клиента, если он пригоден,
// иначе выдаёт UUID. Id кладётся в контекст запроса и возвращается в ответе.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// validRequestID - непустой, не длиннее maxRequestIDLen, только [A-Za-z0-9._-].
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.':
		default:
			return false
		}
	}
	return true
}
