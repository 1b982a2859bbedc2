package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTargetUser(t *testing.T) {
	hub := NewHub()

	mine, cleanupMine := hub.Subscribe("user-1")
	defer cleanupMine()
	other, cleanupOther := hub.Subscribe("user-2")
	defer cleanupOther()

	hub.Publish("user-1", Event{Name: "payroll.status_changed", Data: "x"})

	select {
	case ev := <-mine:
		assert.Equal(t, "payroll.status_changed", ev.Name)
	default:
		t.Fatal("expected event for user-1")
	}

	select {
	case ev := <-other:
		t.Fatalf("unexpected event for user-2: %v", ev)
	default:
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	for i := 0; i < hub.bufferSize+5; i++ {
		hub.Publish("user-1", Event{Name: "tick", Data: i})
	}

	assert.Len(t, ch, hub.bufferSize)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanupA := hub.Subscribe("user-1")
	_, cleanupB := hub.Subscribe("user-1")
	require.Equal(t, 2, hub.SubscriberCount("user-1"))

	cleanupA()
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))
	cleanupB()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{Name: "noop"})
}
