package fluentlogger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfig(t *testing.T) {
	fc, err := clientConfig(Config{Host: "fluent-bit", Port: 24224, TagPrefix: "listing-service", Timeout: 3 * time.Second, Async: true})
	require.NoError(t, err)
	assert.Equal(t, "fluent-bit", fc.FluentHost)
	assert.Equal(t, 24224, fc.FluentPort)
	assert.Equal(t, "listing-service", fc.TagPrefix)
	assert.True(t, fc.Async)

	_, err = clientConfig(Config{Host: "fluent-bit", Port: 24224})
	assert.Error(t, err)

	_, err = clientConfig(Config{TagPrefix: "x", Port: 70000})
	assert.Error(t, err)
}
