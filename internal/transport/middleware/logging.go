package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/parc-info/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// maxLoggedBody caps how much of a body ends up in a log line.
const maxLoggedBody = 4 << 10

const filtered = "[FILTERED]"

// sensitiveFields are matched as substrings of lower-cased header names and
// JSON keys.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"cookie",
	"session",
	"sid",
	"key",
	"credential",
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// Logging writes one line per request and one per response through the
// request-scoped logger. Only JSON bodies are logged, with sensitive fields
// masked.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lg := logger.From(r.Context())

		logRequest(lg, r)

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var body bytes.Buffer
		ww.Tee(&limitedBuffer{buf: &body, max: maxLoggedBody})

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", ww.BytesWritten(),
		}
		if isJSON(ww.Header().Get("Content-Type")) {
			attrs = append(attrs, "body", filterBody(body.Bytes()))
		}
		lg.Log(r.Context(), level, "response", attrs...)
	})
}

func logRequest(lg *slog.Logger, r *http.Request) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"headers", filterHeaders(r.Header),
	}

	if r.Body != nil && isJSON(r.Header.Get("Content-Type")) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
		if err == nil {
			r.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(raw), r.Body), r.Body}
			attrs = append(attrs, "body", filterBody(raw))
		}
	}

	lg.Info("incoming request", attrs...)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func filterHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			out[name] = filtered
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func filterBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxLoggedBody {
		return "[TRUNCATED]"
	}
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "[UNPARSEABLE]"
	}
	out, err := json.Marshal(filterJSON(data))
	if err != nil {
		return "[UNPARSEABLE]"
	}
	return string(out)
}

func filterJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				out[key] = filtered
				continue
			}
			out[key] = filterJSON(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = filterJSON(item)
		}
		return out
	default:
		return v
	}
}

// limitedBuffer keeps the first max+1 bytes written to it and drops the rest
// silently, so a large response is reported as truncated.
type limitedBuffer struct {
	buf *bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max + 1 - l.buf.Len(); room > 0 {
		if len(p) > room {
			l.buf.Write(p[:room])
		} else {
			l.buf.Write(p)
		}
	}
	return len(p), nil
}
