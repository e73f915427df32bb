package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(ctx)
	go hub.Run()
	return hub
}

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
		return Envelope{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("unexpected message: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastToRole(t *testing.T) {
	hub := startHub(t)
	admin := NewClient(nil, hub, uuid.New(), "admin")
	user := NewClient(nil, hub, uuid.New(), "user")
	hub.Register(admin)
	hub.Register(user)

	require.NoError(t, hub.BroadcastToRole("admin", "report.created", map[string]string{"id": "42"}))

	env := receive(t, admin)
	assert.Equal(t, "report.created", env.Type)
	assert.Equal(t, map[string]any{"id": "42"}, env.Data)
	assertSilent(t, user)
}

func TestHub_BroadcastToUser(t *testing.T) {
	hub := startHub(t)
	userID := uuid.New()
	first := NewClient(nil, hub, userID, "user")
	second := NewClient(nil, hub, userID, "user")
	other := NewClient(nil, hub, uuid.New(), "user")
	hub.Register(first)
	hub.Register(second)
	hub.Register(other)

	publisher := NewEventPublisher(hub)
	publisher.PublishToUser(userID, "account.banned", nil)

	assert.Equal(t, "account.banned", receive(t, first).Type)
	assert.Equal(t, "account.banned", receive(t, second).Type)
	assertSilent(t, other)
	assert.Equal(t, 2, hub.ConnectedUsers())
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := startHub(t)
	admin := NewClient(nil, hub, uuid.New(), "admin")
	hub.Register(admin)
	hub.Unregister(admin)

	require.NoError(t, hub.BroadcastToRole("admin", "moderation.entity_dismissed", nil))
	assertSilent(t, admin)
	assert.Zero(t, hub.ConnectedUsers())
}

func TestHub_StoppedHubRejectsBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(ctx)
	cancel()

	err := hub.BroadcastToUser(uuid.New(), "account.suspended", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_WriterPanicUnregisters(t *testing.T) {
	hub := startHub(t)
	// Без соединения writePump паникует на первой же записи.
	client := NewClient(nil, hub, uuid.New(), "admin")
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ConnectedUsers() == 1 }, time.Second, 10*time.Millisecond)

	client.startWriter()
	client.send <- []byte(`{"type":"report.created"}`)

	assert.Eventually(t, func() bool { return hub.ConnectedUsers() == 0 }, time.Second, 10*time.Millisecond)
}
