// Package session tracks the two demo auth flags: whether the user is
// logged in and whether the cookie banner was accepted. Each flag has
// its own storage key and lifecycle. State changes broadcast to
// subscribers, replacing the original cross-tab storage events with an
// explicit subscribe/notify contract.
package session

import (
	"context"
	"sync"

	"github.com/td0m/taskboard/pkg/simulate"
)

const (
	keyLoggedIn       = "isLoggedIn"
	keyCookieAccepted = "isCookieAccepted"
)

// Storage is the client-side key/value storage the flags persist to.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

type EventType int

const (
	LoggedIn EventType = iota
	LoggedOut
	CookieAccepted
)

type Event struct {
	Type EventType
}

// Credentials is the hard-coded demo pair. This is a practice target,
// not a security boundary.
type Credentials struct {
	Username string
	Password string
}

type Store struct {
	mu      sync.RWMutex
	storage Storage
	creds   Credentials

	loginDelay  simulate.Delayer
	cookieDelay simulate.Delayer

	loggedIn       bool
	cookieAccepted bool

	subs map[chan Event]struct{}
}

func New(storage Storage, creds Credentials, loginDelay, cookieDelay simulate.Delayer) *Store {
	s := &Store{
		storage:     storage,
		creds:       creds,
		loginDelay:  loginDelay,
		cookieDelay: cookieDelay,
		subs:        make(map[chan Event]struct{}),
	}
	s.loggedIn = flag(storage, keyLoggedIn)
	s.cookieAccepted = flag(storage, keyCookieAccepted)
	return s
}

func flag(storage Storage, key string) bool {
	v, ok := storage.Get(key)
	return ok && v == "true"
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *Store) CookieAccepted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cookieAccepted
}

// Login is the immediate variant. It reports whether the credentials
// were correct.
func (s *Store) Login(username, password string) bool {
	if username != s.creds.Username || password != s.creds.Password {
		return false
	}
	s.mu.Lock()
	s.loggedIn = true
	s.storage.Set(keyLoggedIn, "true")
	s.mu.Unlock()
	s.broadcast(Event{Type: LoggedIn})
	return true
}

// LoginDelayed awaits the simulated request latency before checking the
// credentials, like a real authentication round-trip would.
func (s *Store) LoginDelayed(ctx context.Context, username, password string) (bool, error) {
	if err := s.loginDelay.Delay(ctx); err != nil {
		return false, err
	}
	return s.Login(username, password), nil
}

// Logout clears both flags: the cookie banner shows again after logout.
func (s *Store) Logout() {
	s.mu.Lock()
	s.loggedIn = false
	s.cookieAccepted = false
	s.storage.Remove(keyLoggedIn)
	s.storage.Remove(keyCookieAccepted)
	s.mu.Unlock()
	s.broadcast(Event{Type: LoggedOut})
}

// AcceptCookie awaits the simulated delay, then sets the consent flag.
func (s *Store) AcceptCookie(ctx context.Context) error {
	if err := s.cookieDelay.Delay(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.cookieAccepted = true
	s.storage.Set(keyCookieAccepted, "true")
	s.mu.Unlock()
	s.broadcast(Event{Type: CookieAccepted})
	return nil
}

// Subscribe returns a buffered channel receiving every state change.
// Subscribers that fall behind miss events rather than blocking.
func (s *Store) Subscribe() chan Event {
	ch := make(chan Event, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Store) Unsubscribe(ch chan Event) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
	close(ch)
}

func (s *Store) broadcast(e Event) {
	s.mu.RLock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
	s.mu.RUnlock()
}
