package auth

import (
	"sync"

	"github.com/ramcivil/monitoring-service/internal/model"
)

// RoleEvent is published whenever a profile's role changes, so connected
// dashboards can drop their locally cached role without polling.
type RoleEvent struct {
	UserID string     `json:"user_id"`
	Role   model.Role `json:"role"`
}

// RoleFeed fans role changes out to subscribers. Subscriptions have an
// explicit connect/disconnect lifecycle; a subscriber that falls behind
// misses events rather than blocking the publisher.
type RoleFeed struct {
	mu   sync.Mutex
	subs map[int]chan RoleEvent
	next int
}

func NewRoleFeed() *RoleFeed {
	return &RoleFeed{subs: make(map[int]chan RoleEvent)}
}

func (f *RoleFeed) Subscribe() (int, <-chan RoleEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan RoleEvent, 8)
	f.subs[id] = ch
	return id, ch
}

func (f *RoleFeed) Unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(ch)
	}
}

func (f *RoleFeed) Publish(event RoleEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
