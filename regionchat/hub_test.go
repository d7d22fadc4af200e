package regionchat

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"tripmate/models"

	"github.com/stretchr/testify/require"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "서울", "u1")
	hub.register <- client

	msg := models.RegionMessage{MessageID: "m1", City: "서울", Content: "hello"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{City: "서울", Data: data}

	select {
	case got := <-client.Send:
		require.Equal(t, string(data), string(got))
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client

	select {
	case <-client.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for done signal")
	}
}

func TestHubBroadcastStaysInRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	seoul := newClient(nil, "서울", "u1")
	busan := newClient(nil, "부산", "u2")
	hub.register <- seoul
	hub.register <- busan

	hub.broadcast <- broadcastMsg{City: "서울", Data: []byte("only seoul")}

	select {
	case got := <-seoul.Send:
		require.Equal(t, "only seoul", string(got))
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-busan.Send:
		t.Fatalf("busan room should not receive %q", got)
	case <-time.After(100 * time.Millisecond):
	}

	hub.unregister <- seoul
	hub.unregister <- busan
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// buffer of 1, second broadcast overflows and evicts the client
	slow := &Client{Send: make(chan []byte, 1), done: make(chan struct{}), City: "제주"}
	hub.register <- slow

	hub.broadcast <- broadcastMsg{City: "제주", Data: []byte("one")}
	hub.broadcast <- broadcastMsg{City: "제주", Data: []byte("two")}

	// eviction is signalled through done; Send stays open so concurrent
	// writers never hit a closed channel
	select {
	case <-slow.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for eviction")
	}
	require.Equal(t, "one", string(<-slow.Send))
}

func TestHubUnregisterDuringHistoryReplay(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "서울", "u1")
	hub.register <- client

	// replay far more messages than the Send buffer holds while the client
	// disconnects; send must back off instead of panicking
	replayDone := make(chan struct{})
	go func() {
		defer close(replayDone)
		for i := 0; i < 1000; i++ {
			if !client.send([]byte(fmt.Sprintf("history %d", i))) {
				return
			}
		}
	}()

	hub.unregister <- client

	select {
	case <-replayDone:
	case <-time.After(2 * time.Second):
		t.Fatal("replay goroutine did not stop after unregister")
	}
}

func TestHubUnregisterTwiceIsSafe(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "서울", "u1")
	hub.register <- client
	hub.unregister <- client
	hub.unregister <- client // second drop must not close done again

	select {
	case <-client.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for done signal")
	}
}
