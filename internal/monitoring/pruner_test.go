package monitoring

import (
	"context"
	"testing"

	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEventPruner_RunOnce(t *testing.T) {
	ctx := context.Background()
	events := services.NewEventService(store.NewMemoryEventLog(), nil)
	for i := 0; i < 5; i++ {
		require.NoError(t, events.CreateEvent(ctx, "book.create", "info", "created", ""))
	}

	p, err := NewEventPruner(events, "@hourly", 2)
	require.NoError(t, err)
	p.RunOnce()

	recent, err := events.GetRecentEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestEventPruner_InvalidSchedule(t *testing.T) {
	events := services.NewEventService(store.NewMemoryEventLog(), nil)
	_, err := NewEventPruner(events, "every now and then", 10)
	require.Error(t, err)
}

func TestEventPruner_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	events := services.NewEventService(store.NewMemoryEventLog(), nil)
	p, err := NewEventPruner(events, "@every 1h", 10)
	require.NoError(t, err)

	p.Start()
	p.Stop()
}
