package server

import (
	"sync"

	"github.com/UnknownOlympus/bazaar/internal/catalog"
)

// flash collects the notifications raised while serving one request.
type flash struct {
	mu            sync.Mutex
	notifications []catalog.Notification
}

func (f *flash) Notify(n catalog.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

func (f *flash) list() []catalog.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]catalog.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

// redirect remembers where the page asked to go; the handler answers with a redirect.
type redirect struct {
	path string
}

func (r *redirect) Navigate(path string) {
	r.path = path
}
