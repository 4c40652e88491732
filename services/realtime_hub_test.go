package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestSocket(t *testing.T) (*websocket.Conn, <-chan []byte, func()) {
	t.Helper()
	received := make(chan []byte, 64)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			received <- msg
		}
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn, received, srv.Close
}

func TestBroadcastProgressDelivers(t *testing.T) {
	conn, received, closeSrv := dialTestSocket(t)
	defer closeSrv()

	hub := NewRealtimeHub()
	client := &WSClient{UserID: 7, Conn: conn}
	hub.Register(client)
	defer hub.Unregister(client)

	hub.BroadcastProgress(7, map[string]interface{}{"calories": 1200})
	// Other users' broadcasts must not reach this client.
	hub.BroadcastProgress(8, map[string]interface{}{"calories": 9000})

	select {
	case msg := <-received:
		assert.Contains(t, string(msg), `"type":"progress_update"`)
		assert.Contains(t, string(msg), `"calories":1200`)
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast not delivered")
	}

	select {
	case msg := <-received:
		t.Fatalf("unexpected extra message: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcastProgressConcurrent(t *testing.T) {
	conn, received, closeSrv := dialTestSocket(t)
	defer closeSrv()

	hub := NewRealtimeHub()
	client := &WSClient{UserID: 7, Conn: conn}
	hub.Register(client)
	defer hub.Unregister(client)

	// Several meal/exercise writes landing at once fan out through the same
	// connection; writes must be serialized, not interleaved.
	const broadcasts = 8
	var wg sync.WaitGroup
	for i := 0; i < broadcasts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.BroadcastProgress(7, map[string]interface{}{"calories": 100})
		}()
	}
	wg.Wait()

	for i := 0; i < broadcasts; i++ {
		select {
		case msg := <-received:
			assert.Contains(t, string(msg), "progress_update")
		case <-time.After(2 * time.Second):
			t.Fatalf("broadcast %d not delivered", i+1)
		}
	}
}
