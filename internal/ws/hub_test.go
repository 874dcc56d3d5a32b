package ws

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubForTests(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(log.New(io.Discard, "", 0), 32, 256)
	go hub.Run()
	t.Cleanup(hub.Close)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialObserver(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Registration happens after the handshake; give the hub a moment
	// before publishing at this observer.
	time.Sleep(50 * time.Millisecond)
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (Envelope, []byte) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	return env, frame
}

func TestHub_DeliversPublishedEvent(t *testing.T) {
	hub, url := newHubForTests(t)
	conn := dialObserver(t, url)

	hub.Publish("newTask", map[string]any{"id": 1, "titulo": "Test tarea"})

	env, _ := readEnvelope(t, conn)
	assert.Equal(t, "newTask", env.Event)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Test tarea", data["titulo"])
}

func TestHub_AllObserversReceiveIdenticalFrames(t *testing.T) {
	hub, url := newHubForTests(t)
	first := dialObserver(t, url)
	second := dialObserver(t, url)

	hub.Publish("newTask", map[string]any{"id": 7, "status": "pending"})

	_, frame1 := readEnvelope(t, first)
	_, frame2 := readEnvelope(t, second)
	assert.Equal(t, frame1, frame2, "every observer must see the same bytes")
}

func TestHub_PreservesPublishOrderPerObserver(t *testing.T) {
	hub, url := newHubForTests(t)
	conn := dialObserver(t, url)

	events := []string{"newTask", "taskUpdated", "taskUpdated", "taskDeleted"}
	for i, name := range events {
		hub.Publish(name, map[string]any{"seq": i})
	}

	for i, want := range events {
		env, _ := readEnvelope(t, conn)
		assert.Equal(t, want, env.Event, "frame %d out of order", i)

		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(i), data["seq"])
	}
}

func TestHub_LateObserverMissesEarlierEvents(t *testing.T) {
	hub, url := newHubForTests(t)

	hub.Publish("taskDeleted", map[string]any{"id": 1})
	// Let the fan-out settle before anyone connects.
	time.Sleep(50 * time.Millisecond)

	late := dialObserver(t, url)
	hub.Publish("newTask", map[string]any{"id": 2})

	env, _ := readEnvelope(t, late)
	assert.Equal(t, "newTask", env.Event, "late observer must only see events after connect")
}

func TestHub_DisconnectedObserverDoesNotBlockOthers(t *testing.T) {
	hub, url := newHubForTests(t)
	gone := dialObserver(t, url)
	alive := dialObserver(t, url)

	gone.Close()
	time.Sleep(50 * time.Millisecond)

	hub.Publish("taskUpdated", map[string]any{"id": 3, "status": "completed"})

	env, _ := readEnvelope(t, alive)
	assert.Equal(t, "taskUpdated", env.Event)
}
