package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"arena-clash/server/internal/arena"
	"arena-clash/server/logging"
)

// Hub owns the battle world and the spectator connections. The world is
// only touched while holding the mutex; broadcasting happens on copies
// after the lock is released, so a slow or failing spectator can never
// stall a tick.
type Hub struct {
	mu          sync.Mutex
	world       *arena.World
	cfg         arena.BattleConfig
	subscribers map[uint64]*subscriber
	nextSubID   atomic.Uint64
	publisher   logging.Publisher
}

type subscriber struct {
	id   uint64
	conn *websocket.Conn
	mu   sync.Mutex
}

// newHub builds the hub and seeds the opening battle from the config.
func newHub(cfg arena.BattleConfig, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	cfg = cfg.Normalized()
	world := arena.NewWorld(cfg, publisher)
	world.Reset(cfg.Counts)
	return &Hub{
		world:       world,
		cfg:         cfg,
		subscribers: make(map[uint64]*subscriber),
		publisher:   publisher,
	}
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now

			h.broadcastState(h.advance(dt))
		}
	}
}

// advance steps the world once under the lock and assembles the broadcast
// message from snapshots.
func (h *Hub) advance(dt float64) stateMessage {
	h.mu.Lock()
	result := h.world.Step(dt)
	entities, projectiles := h.world.Snapshot()
	h.mu.Unlock()

	return stateMessage{
		Type:        "state",
		Tick:        result.Tick,
		Entities:    entities,
		Projectiles: projectiles,
		AliveCounts: result.AliveCounts,
		Outcome:     result.Outcome,
		Events:      result.Events,
		ServerTime:  time.Now().UnixMilli(),
	}
}

// Subscribe registers a spectator connection and returns it alongside the
// init message describing the arena.
func (h *Hub) Subscribe(conn *websocket.Conn) (*subscriber, initMessage) {
	sub := &subscriber{id: h.nextSubID.Add(1), conn: conn}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	catalog := h.world.Catalog()
	counts := h.cfg.Counts
	h.mu.Unlock()

	archetypes := make([]archetypeInfo, 0, 3)
	for _, a := range catalog.Archetypes() {
		archetypes = append(archetypes, archetypeInfo{
			ID:     a.ID,
			Name:   a.Name,
			Color:  a.Color,
			Radius: a.BodyRadius,
		})
	}
	return sub, initMessage{
		Type:        "init",
		ArenaRadius: h.cfg.ArenaRadius,
		Archetypes:  archetypes,
		Counts:      counts,
	}
}

// Unsubscribe drops a spectator; safe to call twice.
func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	delete(h.subscribers, id)
	h.mu.Unlock()
}

// HandleControl applies a spectator command. Unknown counts keys and
// negative values are tolerated; unknown message types are an error the
// caller may log but must not escalate.
func (h *Hub) HandleControl(raw []byte) error {
	var msg controlMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("parse control message: %w", err)
	}
	switch msg.Type {
	case "reset":
		counts := make(map[arena.ArchetypeID]int, len(msg.Counts))
		for key, n := range msg.Counts {
			counts[arena.ArchetypeID(key)] = n
		}
		h.mu.Lock()
		h.world.Reset(counts)
		h.mu.Unlock()
		return nil
	default:
		return fmt.Errorf("unknown control type %q", msg.Type)
	}
}

// DiagnosticsSnapshot exposes tick and subscriber data for /diagnostics.
func (h *Hub) DiagnosticsSnapshot() diagnosticsSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return diagnosticsSnapshot{
		Tick:        h.world.Tick(),
		Outcome:     h.world.Outcome(),
		AliveCounts: h.world.AliveCounts(),
		Subscribers: len(h.subscribers),
	}
}

// broadcastState sends the latest snapshot to every spectator. Write
// failures drop that spectator only.
func (h *Hub) broadcastState(msg stateMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("failed to send update to subscriber %d: %v", sub.id, err)
			h.Unsubscribe(sub.id)
			sub.conn.Close()
		}
	}
}

func (s *subscriber) sendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
