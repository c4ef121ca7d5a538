package theme

import (
	"sync"
	"sync/atomic"
)

const lockSource = "theme.lock"

// Lock pins one attribute to a fixed value. It subscribes on creation,
// forces the value, and puts it back whenever someone else changes it.
type Lock struct {
	attrs *Attributes
	key   string
	value string

	sub        *Subscription
	correcting atomic.Bool
	released   atomic.Bool
	once       sync.Once
}

// NewLock pins key to value on attrs until Release is called.
func NewLock(attrs *Attributes, key, value string) *Lock {
	l := &Lock{attrs: attrs, key: key, value: value}
	l.sub = attrs.Subscribe(l.observe)
	attrs.Set(key, value, lockSource)
	return l
}

// Value returns the pinned value.
func (l *Lock) Value() string {
	return l.value
}

func (l *Lock) observe(change Change) {
	if l.released.Load() || change.Key != l.key {
		return
	}
	if change.Source == lockSource || change.New == l.value {
		return
	}
	// A correction that itself triggers observers must not recurse.
	if !l.correcting.CompareAndSwap(false, true) {
		return
	}
	defer l.correcting.Store(false)
	l.attrs.Set(l.key, l.value, lockSource)
}

// Release stops enforcing the value. It is idempotent.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.released.Store(true)
		l.sub.Unsubscribe()
	})
}
