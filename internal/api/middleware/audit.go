package middleware

import (
	"Instalytics/internal/pkg/logger"
	"bytes"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const auditBodyLimit = 4096

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < auditBodyLimit {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求参数；成功响应只记录大小，失败响应记录响应体
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", logger.RedactQuery(c.Request.URL.RawQuery)),
			log.String("origin", c.GetHeader("Origin")),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		fields := []any{
			log.Int("status", c.Writer.Status()),
			log.Int("size", c.Writer.Size()),
			log.Duration("latency", time.Since(startTime)),
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			resBody := w.body.String()
			if len(resBody) > auditBodyLimit {
				resBody = resBody[:auditBodyLimit] + "...[truncated]"
			}
			fields = append(fields, log.String("res_body", resBody))
			log.WarnContext(ctx, "Send Response", fields...)
			return
		}
		log.InfoContext(ctx, "Send Response", fields...)
	}
}
