package router

import "sync"

// Navigator holds the current location and the back stack.
type Navigator struct {
	mu      sync.Mutex
	current string
	history []string
}

func NewNavigator(start string) *Navigator {
	return &Navigator{current: start}
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Push moves to path, keeping the current location on the back stack.
func (n *Navigator) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != "" {
		n.history = append(n.history, n.current)
	}
	n.current = path
}

// Replace moves to path without leaving the current location reachable
// through Back.
func (n *Navigator) Replace(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
}

// Back returns to the previous location; ok is false when there is none.
func (n *Navigator) Back() (path string, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return n.current, false
	}
	n.current = n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	return n.current, true
}

// History returns the back stack, oldest first.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}
