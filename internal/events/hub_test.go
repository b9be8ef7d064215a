package events

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestHubBroadcastsCoverEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	router := gin.New()
	router.GET("/ws", WSHandler(hub))

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Expected dial to succeed, got %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, welcome, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected welcome message, got %v", err)
	}
	if !strings.Contains(string(welcome), `"welcome"`) {
		t.Errorf("Unexpected welcome %s", welcome)
	}

	deadline := time.Now().Add(5 * time.Second)
	for hub.Stats().WSClients != 1 {
		if time.Now().After(deadline) {
			t.Fatal("Client was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish(CoverEvent{Type: TypeCoverAdded, ID: "c1", URL: "/a.jpg"})

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected event, got %v", err)
	}
	var ev CoverEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("Expected JSON event, got %v", err)
	}
	if ev.Type != TypeCoverAdded || ev.URL != "/a.jpg" || ev.At.IsZero() {
		t.Errorf("Unexpected event %+v", ev)
	}
}

func TestStatsEmptyHub(t *testing.T) {
	if n := NewHub().Stats().WSClients; n != 0 {
		t.Errorf("Expected 0 clients, got %d", n)
	}
}
