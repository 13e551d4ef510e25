// AngelaMos | 2026
// log.go

package notify

import (
	"context"
	"log/slog"
	"sort"
	"strings"
)

const ChannelConsole = "console"

// LogTransport writes the notification to the structured log. It is the
// end of every fallback chain and never fails.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Name() string { return ChannelConsole }

func (t *LogTransport) Send(_ context.Context, msg Message) error {
	t.logger.Info("notification (console fallback)",
		"kind", msg.Kind,
		"to", redactAll(msg.To),
		"reply_to", RedactEmail(msg.ReplyTo),
		"subject", msg.Subject,
		slog.Group("fields", fieldAttrs(msg.Fields)...),
	)
	return nil
}

// fieldAttrs lists event fields in key order. Addresses are redacted.
func fieldAttrs(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(k), "email") {
			v = RedactEmail(s)
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
