package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("toast", slog.String("title", "hi"), slog.Int("n", 2))
	require.Equal(t, "toast", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "title", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrorAttrs(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))

	single := logger.Error(err1)
	require.Equal(t, "error", single.Key)
	assert.Equal(t, err1, single.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestStringAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{name: "session", attr: logger.SessionID("s-1"), wantKey: "session_id", wantVal: "s-1"},
		{name: "notification", attr: logger.NotificationID("abc123xyz"), wantKey: "notification_id", wantVal: "abc123xyz"},
		{name: "request", attr: logger.RequestID("req-1"), wantKey: "request_id", wantVal: "req-1"},
		{name: "lang", attr: logger.Lang("fr"), wantKey: "lang", wantVal: "fr"},
		{name: "key", attr: logger.Key("nav.home"), wantKey: "key", wantVal: "nav.home"},
		{name: "component", attr: logger.Component("i18n"), wantKey: "component", wantVal: "i18n"},
		{name: "handler", attr: logger.Handler("list"), wantKey: "handler", wantVal: "list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.attr.Key)
			assert.Equal(t, tt.wantVal, tt.attr.Value.String())
		})
	}
}

func TestEmptyIDAttrs(t *testing.T) {
	assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	assert.True(t, logger.NotificationID("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	attr := logger.Duration(1500 * time.Millisecond)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 1500*time.Millisecond, attr.Value.Duration())
}
