package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	EventPostCreated  = "post_created"
	EventPostDeleted  = "post_deleted"
	EventPostVoted    = "post_voted"
	EventCommentAdded = "comment_added"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 90 * time.Second
	pingPeriod = 25 * time.Second
)

// Event is pushed to every connected browser. It only ever carries values the
// server computed; per-caller vote flags are never broadcast.
type Event struct {
	Type   string      `json:"type"`
	PostID string      `json:"postId"`
	Data   interface{} `json:"data,omitempty"`
}

// VoteCounts is the payload of a post_voted event.
type VoteCounts struct {
	UpvoteCount   int    `json:"upvoteCount"`
	DownvoteCount int    `json:"downvoteCount"`
	VoteScore     int    `json:"voteScore"`
	Version       uint64 `json:"voteVersion"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans forum events out to websocket clients.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*client]struct{}
	broadcast chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*client]struct{}),
		broadcast: make(chan Event, 64),
		done:      make(chan struct{}),
	}
}

// Broadcast queues ev for delivery. It never blocks; events are dropped when the queue is full.
func (h *Hub) Broadcast(ev Event) {
	select {
	case h.broadcast <- ev:
	case <-h.done:
	default:
		log.Printf("realtime: broadcast queue full, dropping %s", ev.Type)
	}
}

// Run dispatches queued events until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case ev := <-h.broadcast:
			h.dispatch(ev)
		case <-h.done:
			return
		}
	}
}

// dispatch hands ev to every client. The read lock is held across the sends so
// remove and Close cannot close a send channel underneath them; the sends never block.
func (h *Hub) dispatch(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			// slow client, drop
		}
	}
}

// Close stops Run and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		for c := range h.clients {
			close(c.send)
			delete(h.clients, c)
		}
		h.mu.Unlock()
	})
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		return false
	default:
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request and streams events until the client goes away.
// The feed is public; anonymous readers get the same events as members.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Event, 16)}
	if !h.add(c) {
		conn.Close()
		return
	}

	go h.writerLoop(c)
	h.readerLoop(c)
}

func (h *Hub) writerLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readerLoop only drains control frames; clients never send events.
func (h *Hub) readerLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
