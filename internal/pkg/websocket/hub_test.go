package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub, userID int64) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(hub, nil, zerolog.Nop())
	r.GET("/ws", func(c *gin.Context) {
		c.Set("userID", userID)
		h.HandleConnection(c)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *gws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversToConnectedUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	srv := newTestServer(t, hub, 7)
	conn := dial(t, srv)

	require.Eventually(t, func() bool { return hub.GetClientsCount(7) == 1 }, time.Second, 10*time.Millisecond)

	hub.Notify(7, NewNotification(PaperStatusChanged, 12, "ACCEPTED", "Bildiriniz kabul edildi"))
	// Not connected; must not block or panic
	hub.Notify(99, NewNotification(ReviewerAssigned, 12, "", "x"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Notification
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, PaperStatusChanged, got.Type)
	assert.EqualValues(t, 12, got.PaperID)
	assert.Equal(t, "ACCEPTED", got.Status)
	assert.False(t, got.Timestamp.IsZero())
}

func TestHubUnregistersOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	srv := newTestServer(t, hub, 3)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.GetClientsCount(3) == 1 }, time.Second, 10*time.Millisecond)

	conn.WriteMessage(gws.CloseMessage, gws.FormatCloseMessage(gws.CloseNormalClosure, ""))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.GetClientsCount(3) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubShutdownReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	srv := newTestServer(t, hub, 5)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.GetClientsCount(5) == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-stopped

	// The server side closes the socket and the read pump exits without a hub
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.GetClientsCount(5))

	removed := make(chan struct{})
	go func() {
		hub.remove(&Client{hub: hub, userID: 5})
		close(removed)
	}()
	select {
	case <-removed:
	case <-time.After(time.Second):
		t.Fatal("remove blocked after the hub stopped")
	}

	// New connections after shutdown are refused instead of hanging
	late := dial(t, srv)
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = late.ReadMessage()
	assert.True(t, gws.IsCloseError(err, gws.CloseGoingAway))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://sempozyum.org"})
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	req.Header.Set("Origin", "https://sempozyum.org")
	assert.True(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
