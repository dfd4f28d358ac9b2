package ssh

import "sync"

// Lobby caps the number of concurrent player sessions.
type Lobby struct {
	mu     sync.Mutex
	max    int
	active int
}

// NewLobby admits at most max sessions at once.
func NewLobby(max int) *Lobby {
	return &Lobby{max: max}
}

// Join claims a seat. When the lobby is full it returns ok == false.
// Otherwise leave must be called once the session ends; extra calls are
// ignored.
func (l *Lobby) Join() (leave func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active >= l.max {
		return nil, false
	}
	l.active++

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.active--
			l.mu.Unlock()
		})
	}, true
}

// Active returns the number of seated sessions.
func (l *Lobby) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Capacity returns the configured maximum.
func (l *Lobby) Capacity() int { return l.max }
