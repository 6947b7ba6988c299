// Package notify is the toast surface: actions emit success/error
// messages and the UI renders whatever arrives.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

type Notification struct {
	ID      string
	Kind    Kind
	Message string
	At      time.Time
}

// Notifier is what the controllers emit to.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Hub fans notifications out to subscribers. Subscribers that fall
// behind miss notifications rather than blocking the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Notification]struct{})}
}

func (h *Hub) Success(message string) {
	h.publish(Success, message)
}

func (h *Hub) Error(message string) {
	h.publish(Error, message)
}

func (h *Hub) publish(kind Kind, message string) {
	n := Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		At:      time.Now(),
	}
	h.mu.RLock()
	for ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
	h.mu.RUnlock()
}

// Subscribe returns a buffered channel receiving all new notifications.
func (h *Hub) Subscribe() chan Notification {
	ch := make(chan Notification, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch chan Notification) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}
