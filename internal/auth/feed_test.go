package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ramcivil/monitoring-service/internal/model"
)

func TestFeedFanOut(t *testing.T) {
	feed := NewRoleFeed()

	idA, chA := feed.Subscribe()
	idB, chB := feed.Subscribe()
	defer feed.Unsubscribe(idA)
	defer feed.Unsubscribe(idB)

	feed.Publish(RoleEvent{UserID: "u1", Role: model.RoleAdmin})

	for _, ch := range []<-chan RoleEvent{chA, chB} {
		select {
		case event := <-ch:
			assert.Equal(t, "u1", event.UserID)
			assert.Equal(t, model.RoleAdmin, event.Role)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestFeedUnsubscribeClosesChannel(t *testing.T) {
	feed := NewRoleFeed()

	id, ch := feed.Subscribe()
	feed.Unsubscribe(id)

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is harmless.
	feed.Unsubscribe(id)
}

func TestFeedSlowSubscriberDropsEvents(t *testing.T) {
	feed := NewRoleFeed()

	id, ch := feed.Subscribe()
	defer feed.Unsubscribe(id)

	// Fill the buffer and keep publishing; the publisher must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			feed.Publish(RoleEvent{UserID: "u1", Role: model.RoleGuest})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}

	assert.Len(t, ch, 8)
}
