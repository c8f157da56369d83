package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewLogger_ContextAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "debug"})

	ctx := ContextWithAttrs(context.Background(), slog.String("transport", "smtp"))
	ctx = ContextWithAttrs(ctx, slog.String("template", "welcome"))
	log.DebugContext(ctx, "mail sent")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "mail sent", rec["msg"])

	group, ok := rec["mail"].(map[string]any)
	require.True(t, ok, "mail group should be present")
	assert.Equal(t, "smtp", group["transport"])
	assert.Equal(t, "welcome", group["template"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "warn", Format: "text"})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestContextWithAttrs_DoesNotLeakBetweenBranches(t *testing.T) {
	t.Parallel()

	base := ContextWithAttrs(context.Background(), slog.String("transport", "log"))
	a := ContextWithAttrs(base, slog.String("template", "a"))
	b := ContextWithAttrs(base, slog.String("template", "b"))

	require.Len(t, AttrsFromContext(base), 1)
	require.Len(t, AttrsFromContext(a), 2)
	require.Len(t, AttrsFromContext(b), 2)
	assert.Equal(t, "a", AttrsFromContext(a)[1].Value.String())
	assert.Equal(t, "b", AttrsFromContext(b)[1].Value.String())
}

func TestContextHandler_SkipsNilExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	extractor := func(context.Context) (slog.Attr, bool) { return slog.String("request_id", "r-1"), true }
	log := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil), nil, extractor))

	log.InfoContext(context.Background(), "hello")
	assert.Contains(t, buf.String(), `"request_id":"r-1"`)
}
