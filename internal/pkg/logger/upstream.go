package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	bodyLogLimit     = 1000
	upstreamSlowTime = 2 * time.Second
)

// 日志中需要脱敏的查询参数
var sensitiveParams = []string{"access_token", "client_secret", "appsecret_proof"}

// RedactQuery 将查询串中的凭据替换为 [PROTECTED]
func RedactQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "[UNPARSEABLE]"
	}
	for _, key := range sensitiveParams {
		if values.Has(key) {
			values.Set(key, "[PROTECTED]")
		}
	}
	decoded, err := url.QueryUnescape(values.Encode())
	if err != nil {
		return values.Encode()
	}
	return decoded
}

// UpstreamTransport 记录对 Graph API 的每次调用
type UpstreamTransport struct {
	Transport http.RoundTripper
}

func NewUpstreamTransport(next http.RoundTripper) *UpstreamTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &UpstreamTransport{Transport: next}
}

func (t *UpstreamTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("host", req.URL.Host),
		log.String("path", req.URL.Path),
		log.String("query", RedactQuery(req.URL.RawQuery)),
		log.Duration("latency", elapsed),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "GRAPH_API_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		var resBody []byte
		if resp.Body != nil {
			resBody, _ = io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
		}
		resStr := string(resBody)
		if len(resStr) > bodyLogLimit {
			resStr = resStr[:bodyLogLimit] + "...[truncated]"
		}
		log.WarnContext(req.Context(), "GRAPH_API_FAILED", append(fields, log.String("res_body", resStr))...)
		return resp, nil
	}

	if elapsed > upstreamSlowTime {
		log.WarnContext(req.Context(), "GRAPH_API_SLOW", fields...)
	} else {
		log.InfoContext(req.Context(), "GRAPH_API", fields...)
	}

	return resp, nil
}
