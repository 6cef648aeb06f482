package middleware

import (
	log "log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// 以 ~ 开头的配置项按正则匹配 Origin
const originPatternPrefix = "~"

// OriginMatcher 跨域白名单：精确匹配 + 正则匹配
type OriginMatcher struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
}

func NewOriginMatcher(origins []string) *OriginMatcher {
	m := &OriginMatcher{exact: make(map[string]struct{})}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if pattern, ok := strings.CutPrefix(origin, originPatternPrefix); ok {
			re, err := regexp.Compile(pattern)
			if err != nil {
				log.Warn("Skip invalid CORS origin pattern", "pattern", pattern, "err", err)
				continue
			}
			m.patterns = append(m.patterns, re)
			continue
		}
		m.exact[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return m
}

// Allowed 同源请求（无 Origin）也视为允许
func (m *OriginMatcher) Allowed(origin string) bool {
	if origin == "" {
		return true
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// CORSMiddleware 处理跨域请求
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	matcher := NewOriginMatcher(allowedOrigins)

	return func(c *gin.Context) {
		method := c.Request.Method
		origin := c.Request.Header.Get("Origin")

		if origin != "" {
			c.Header("Vary", "Origin")
			if matcher.Allowed(origin) {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Trace-ID")
				c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Trace-ID")
				c.Header("Access-Control-Allow-Credentials", "true")
			} else {
				log.WarnContext(c.Request.Context(), "CORS origin rejected", "origin", origin)
			}
		}

		// 处理浏览器的 OPTIONS 预检请求
		if method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
