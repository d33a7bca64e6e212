// Package realtime fans box events out to websocket subscribers. Each box is
// a room; clients join a room with a join frame and receive every event
// published for that box until they disconnect.
package realtime

import (
	"encoding/json"
	"sync"
)

// Event is a frame pushed to room subscribers.
type Event struct {
	Type string `json:"type"`
	Box  string `json:"box"`
	Data any    `json:"data,omitempty"`
}

// peer serialises writes to a single websocket connection. The json encoder
// is not safe for concurrent use, so every write goes through the mutex.
type peer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newPeer(encoder *json.Encoder) *peer {
	return &peer{encoder: encoder}
}

func (p *peer) writeEvent(ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(ev)
}

type room struct {
	mu          sync.Mutex
	subscribers map[*peer]struct{}
}

func newRoom() *room {
	return &room{subscribers: make(map[*peer]struct{})}
}

func (r *room) join(p *peer) {
	r.mu.Lock()
	r.subscribers[p] = struct{}{}
	r.mu.Unlock()
}

func (r *room) leave(p *peer) bool {
	r.mu.Lock()
	delete(r.subscribers, p)
	empty := len(r.subscribers) == 0
	r.mu.Unlock()
	return empty
}

func (r *room) peers() []*peer {
	r.mu.Lock()
	out := make([]*peer, 0, len(r.subscribers))
	for p := range r.subscribers {
		out = append(out, p)
	}
	r.mu.Unlock()
	return out
}

// Hub tracks the rooms and hands out per-box broadcast.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

// join adds a peer to the box room, creating the room if needed. Membership
// changes happen under the hub lock so a room can never be torn down while a
// peer is entering it.
func (h *Hub) join(boxID string, p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[boxID]
	if !ok {
		r = newRoom()
		h.rooms[boxID] = r
	}
	r.join(p)
}

// leave removes a peer from the box room and drops the room once its last
// subscriber is gone, so idle boxes do not accumulate forever.
func (h *Hub) leave(boxID string, p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[boxID]
	if !ok {
		return
	}
	if r.leave(p) {
		delete(h.rooms, boxID)
	}
}

// Broadcast delivers ev to every subscriber of the box room. Peers whose
// write fails are dropped from the room; a slow or dead client never blocks
// the publisher beyond its own write.
func (h *Hub) Broadcast(boxID string, ev Event) {
	h.mu.Lock()
	r, ok := h.rooms[boxID]
	h.mu.Unlock()
	if !ok {
		return
	}

	for _, p := range r.peers() {
		if err := p.writeEvent(ev); err != nil {
			h.leave(boxID, p)
		}
	}
}

// Subscribers reports how many peers are currently in the box room.
func (h *Hub) Subscribers(boxID string) int {
	h.mu.Lock()
	r, ok := h.rooms[boxID]
	h.mu.Unlock()
	if !ok {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
