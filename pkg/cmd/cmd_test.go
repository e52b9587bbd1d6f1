package cmd

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersistence(t *testing.T) {
	p, err := NewPersistence("file://" + t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, p.HealthCheck(t.Context()))

	_, err = NewPersistence("postgres://localhost/operion")
	assert.ErrorContains(t, err, "unsupported persistence provider")
}

func TestParsePersistenceProvider(t *testing.T) {
	assert.Equal(t, "file", parsePersistenceProvider("./data"))
	assert.Equal(t, "file", parsePersistenceProvider("file://./data"))
	assert.Equal(t, "redis", parsePersistenceProvider("redis://localhost"))
}

func TestNewEventBus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bus, err := NewEventBus("gochannel", logger)
	require.NoError(t, err)
	assert.NoError(t, bus.Close())

	t.Setenv("KAFKA_BROKERS", "")

	_, err = NewEventBus("kafka", logger)
	assert.Error(t, err)

	_, err = NewEventBus("nats", logger)
	assert.ErrorContains(t, err, "unsupported event bus provider")
}
