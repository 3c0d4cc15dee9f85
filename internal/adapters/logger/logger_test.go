package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"listing-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postedRecord struct {
	tag  string
	data port.Fields
}

type fakeFluent struct {
	posts  []postedRecord
	closed bool
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.posts = append(f.posts, postedRecord{tag: tag, data: message.(port.Fields)})
	return nil
}

func (f *fakeFluent) Close() error {
	f.closed = true
	return nil
}

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"component": "catalog"}).
		Error("Seed rejected", errors.New("missing price"), port.Fields{"seed_index": 3})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "Seed rejected", record["msg"])
	assert.Equal(t, "catalog", record["component"])
	assert.Equal(t, float64(3), record["seed_index"])
	assert.Equal(t, "missing price", record["error"])
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", port.Fields{"b": 2, "a": 1})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Less(t, strings.Index(out, "a=1"), strings.Index(out, "b=2"))
}

func TestFluentAdapter(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)
	adapter.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }

	scoped := adapter.WithFields(port.Fields{"service": "listing-service"})
	scoped.Debug("skipped", nil)
	scoped.Info("Catalog ready", port.Fields{"listings": 209})
	scoped.Error("Publish failed", errors.New("closed"), nil)

	require.Len(t, client.posts, 2)
	assert.Equal(t, "info", client.posts[0].tag)
	assert.Equal(t, "Catalog ready", client.posts[0].data["message"])
	assert.Equal(t, "listing-service", client.posts[0].data["service"])
	assert.Equal(t, 209, client.posts[0].data["listings"])
	assert.Equal(t, "2026-04-01T09:00:00Z", client.posts[0].data["timestamp"])
	assert.Equal(t, "error", client.posts[1].tag)
	assert.Equal(t, "closed", client.posts[1].data["error"])

	require.NoError(t, adapter.Close())
	assert.True(t, client.closed)
}

func TestFluentAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLogger(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)

	var buf bytes.Buffer
	single := NewSlogAdapter(SlogConfig{Writer: &buf})
	same, err := NewMultiloggerAdapter(single, nil)
	require.NoError(t, err)
	assert.Same(t, single, same)

	client := &fakeFluent{}
	fl, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	multi, err := NewMultiloggerAdapter(single, fl)
	require.NoError(t, err)
	multi.WithFields(port.Fields{"trace_id": "t-1"}).Warn("Slow request", nil)

	assert.Contains(t, buf.String(), "trace_id=t-1")
	require.Len(t, client.posts, 1)
	assert.Equal(t, "t-1", client.posts[0].data["trace_id"])
}
