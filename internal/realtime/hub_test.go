package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, h.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	conn := dial(t, h)
	waitForClients(t, h, 1)

	h.Broadcast(Event{
		Type:   EventPostVoted,
		PostID: "p1",
		Data:   VoteCounts{UpvoteCount: 2, DownvoteCount: 1, VoteScore: 1},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Type   string     `json:"type"`
		PostID string     `json:"postId"`
		Data   VoteCounts `json:"data"`
	}
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Type != EventPostVoted || got.PostID != "p1" {
		t.Errorf("unexpected event %+v", got)
	}
	if got.Data.VoteScore != 1 || got.Data.UpvoteCount != 2 {
		t.Errorf("unexpected counts %+v", got.Data)
	}
}

func TestClientRemovedOnDisconnect(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	conn := dial(t, h)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
}

func TestBroadcastWithoutRunDoesNotBlock(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			h.Broadcast(Event{Type: EventPostCreated, PostID: "p"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
}

func TestClientsLeavingDuringBroadcast(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				h.Broadcast(Event{Type: EventPostVoted, PostID: "p1"})
			}
		}
	}()

	var churn sync.WaitGroup
	for i := 0; i < 6; i++ {
		churn.Add(1)
		go func() {
			defer churn.Done()
			for round := 0; round < 200; round++ {
				batch := make([]*client, 8)
				for j := range batch {
					batch[j] = &client{send: make(chan Event, 1)}
					h.add(batch[j])
				}
				for _, c := range batch {
					h.remove(c)
				}
			}
		}()
	}
	churn.Wait()
	close(stop)
	wg.Wait()

	if n := h.ClientCount(); n != 0 {
		t.Errorf("expected no clients left, got %d", n)
	}
}

func TestCloseWhileBroadcasting(t *testing.T) {
	h := NewHub()
	go h.Run()

	for i := 0; i < 16; i++ {
		h.add(&client{send: make(chan Event, 1)})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			h.Broadcast(Event{Type: EventCommentAdded, PostID: "p1"})
		}
	}()
	h.Close()
	<-done

	if n := h.ClientCount(); n != 0 {
		t.Errorf("expected Close to drop every client, got %d", n)
	}
	if h.add(&client{send: make(chan Event, 1)}) {
		t.Error("add after Close should be refused")
	}
}
