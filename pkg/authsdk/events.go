package authsdk

import "sync"

// Signal is a typed, synchronous publish/subscribe channel. Listeners run on
// the emitting goroutine in subscription order.
type Signal[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Signal[T]) emit(v T) {
	s.mu.Lock()
	snapshot := make([]listener[T], len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

// Events groups the notifications an SDKClient emits.
type Events struct {
	// SessionCreated fires when a session is adopted, by sign-in, sign-up or
	// restoration
	SessionCreated Signal[*Session]

	// SessionDestroyed fires with the id of a session that was cleared
	SessionDestroyed Signal[string]

	// UserUpdated fires after the current user record changed
	UserUpdated Signal[*User]

	// OrganizationUpdated fires after the active organization changed or was
	// modified; the value is nil when no organization is active
	OrganizationUpdated Signal[*Organization]

	// Error fires for failures with no caller to return them to, such as the
	// background refresher
	Error Signal[error]
}
