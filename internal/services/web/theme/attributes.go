// Package theme holds the page's observable root attributes and the lock
// that pins a theme for pages that must not follow the visitor preference.
package theme

import (
	"maps"
	"strings"
	"sync"
)

const (
	// Attribute is the root attribute carrying the active theme.
	Attribute = "data-theme"
	// Light and Dark are the supported themes.
	Light = "light"
	Dark  = "dark"
	// CookieName stores the visitor's theme preference.
	CookieName = "theme"
)

// Normalize returns a supported theme name for raw.
func Normalize(raw string) (string, bool) {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case Light, Dark:
		return value, true
	default:
		return "", false
	}
}

// Change describes one attribute mutation.
type Change struct {
	Key    string
	Old    string
	New    string
	Source string
}

// Observer is called after an attribute changes.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id    uint64
	attrs *Attributes
}

// Unsubscribe removes the observer. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.attrs == nil {
		return
	}
	s.attrs.unsubscribe(s.id)
}

// Attributes is a set of root attributes that notifies observers on change.
// Observers run synchronously on the mutating goroutine, outside the lock, so
// they may write back.
type Attributes struct {
	mu        sync.RWMutex
	values    map[string]string
	observers map[uint64]Observer
	nextID    uint64
}

// NewAttributes copies initial into a new set.
func NewAttributes(initial map[string]string) *Attributes {
	values := make(map[string]string, len(initial))
	maps.Copy(values, initial)
	return &Attributes{
		values:    values,
		observers: make(map[uint64]Observer),
	}
}

// Get returns the value of key.
func (a *Attributes) Get(key string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.values[key]
	return value, ok
}

// Snapshot returns a copy of every attribute.
func (a *Attributes) Snapshot() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.values)
}

// Set stores value under key and notifies observers when it changed.
func (a *Attributes) Set(key, value, source string) {
	a.mu.Lock()
	old, existed := a.values[key]
	if existed && old == value {
		a.mu.Unlock()
		return
	}
	a.values[key] = value
	observers := a.snapshotObservers()
	a.mu.Unlock()

	change := Change{Key: key, Old: old, New: value, Source: source}
	for _, observer := range observers {
		observer(change)
	}
}

// Subscribe registers observer for every change.
func (a *Attributes) Subscribe(observer Observer) *Subscription {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.observers[id] = observer
	return &Subscription{id: id, attrs: a}
}

// Unsubscribe removes sub. A nil or already removed subscription is ignored.
func (a *Attributes) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.attrs != a {
		return
	}
	a.unsubscribe(sub.id)
}

// Observers reports the number of active subscriptions.
func (a *Attributes) Observers() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.observers)
}

func (a *Attributes) unsubscribe(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.observers, id)
}

func (a *Attributes) snapshotObservers() []Observer {
	observers := make([]Observer, 0, len(a.observers))
	for _, observer := range a.observers {
		observers = append(observers, observer)
	}
	return observers
}
