package server

import (
	"encoding/json"
	"sync"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

const (
	// EventState carries the full committed game document.
	EventState = "state"

	// Ephemeral notification events; delivery is fire-and-forget.
	EventPartnerAnswered  = "partner_answered"
	EventJudgmentReceived = "judgment_received"
)

// Event is the payload published to game subscribers.
type Event struct {
	Type string        `json:"type"`
	Game *duoquiz.Game `json:"game,omitempty"`

	QuestionIndex int              `json:"questionIndex,omitempty"`
	QuestionID    string           `json:"questionId,omitempty"`
	PlayerID      string           `json:"playerId,omitempty"`
	Judgment      duoquiz.Judgment `json:"judgment,omitempty"`
}

// Broker is an in-process pub/sub for game events, keyed by game ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given game.
func (b *Broker) Subscribe(gameID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(gameID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given game.
func (b *Broker) Publish(gameID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
