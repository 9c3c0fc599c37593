package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// sensitiveKeys contains attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"api_key":             true,
	"apikey":              true,
	"password":            true,
	"passwd":              true,
	"secret":              true,
	"token":               true,
	"access_token":        true,
}

// sensitiveKeywords mask any key that contains them, e.g. "githubToken".
// The bare "key" is left out: it matches far too much ("keyboard", "monkey").
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "credential",
}

var (
	// userinfoPattern matches "scheme://user:pass@" or a bare "user:pass@"
	// at the start of a host.
	userinfoPattern = regexp.MustCompile(`(?i)((?:^|[a-z][a-z0-9+.-]*://))[^/?#@\s]+@`)

	// queryPattern matches secret-looking query parameters.
	queryPattern = regexp.MustCompile(`(?i)([?&](?:access_token|token|api_key|apikey|key|secret|password|sig|signature)=)[^&#\s]*`)

	// bearerPattern matches an Authorization header value.
	bearerPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)
)

// SecureHandler wraps an slog.Handler and masks sensitive values before
// passing records on to it.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes, masked, added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// sanitizeAttr masks a single attribute, recursing into groups.
func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitized := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			sanitized[i] = sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitized...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); s != "" {
			return slog.String(a.Key, SanitizeString(s))
		}
	case slog.KindAny:
		// Errors often embed the request URL.
		if err, ok := a.Value.Any().(error); ok && err != nil {
			msg := err.Error()
			if clean := SanitizeString(msg); clean != msg {
				return slog.String(a.Key, clean)
			}
		}
	}
	return a
}

// isSensitiveKey reports whether values under key must be masked entirely.
func isSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if sensitiveKeys[k] {
		return true
	}
	for _, kw := range sensitiveKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// SanitizeString masks credentials embedded in s: URL userinfo, secret
// query parameters and Authorization header values. Other text is kept.
func SanitizeString(s string) string {
	if bearerPattern.MatchString(s) {
		return MaskValue
	}
	if strings.Contains(s, "@") {
		s = userinfoPattern.ReplaceAllString(s, "${1}"+MaskValue+"@")
	}
	if strings.Contains(s, "=") {
		s = queryPattern.ReplaceAllString(s, "${1}"+MaskValue)
	}
	return s
}

// Options configures NewLogger.
type Options struct {
	// Verbose lowers the level from Info to Debug.
	Verbose bool

	// JSON selects the JSON handler instead of the text handler.
	JSON bool
}

// NewLogger creates a *slog.Logger writing to w with secure handling.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(NewSecureHandler(handler))
}
