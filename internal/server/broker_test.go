package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("game-1")
	other := b.Subscribe("game-2")

	b.Publish("game-1", Event{Type: EventPartnerAnswered, QuestionIndex: 3})

	select {
	case data := <-ch:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventPartnerAnswered, event.Type)
		assert.Equal(t, 3, event.QuestionIndex)
	default:
		t.Fatal("expected an event on the subscribed channel")
	}

	// Events do not leak across games.
	select {
	case <-other:
		t.Fatal("event delivered to the wrong game")
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe("game-1")
	b.Unsubscribe("game-1", ch)

	b.Publish("game-1", Event{Type: EventState})
	select {
	case <-ch:
		t.Fatal("event delivered after unsubscribe")
	default:
	}
}

func TestBrokerDropsWhenSubscriberFull(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("game-1")

	// Overfill the buffer; Publish must not block.
	for range 100 {
		b.Publish("game-1", Event{Type: EventState})
	}
	assert.Equal(t, cap(ch), len(ch))
}
