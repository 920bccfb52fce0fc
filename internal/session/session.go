// Package session tracks user inactivity. A Tracker holds the last activity
// timestamp for each user and reports expiry after a configured idle
// timeout; Watch emits expiry events so callers can drop cached state.
package session

import (
	"context"
	"sync"
	"time"
)

type Tracker struct {
	timeout time.Duration
	now     func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

func NewTracker(timeout time.Duration) *Tracker {
	return &Tracker{
		timeout: timeout,
		now:     time.Now,
		last:    make(map[string]time.Time),
	}
}

// Touch records activity for the user, pushing the expiry deadline forward.
func (t *Tracker) Touch(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last[userID] = t.now()
}

// Deadline returns when the user's session expires and whether the user has
// any recorded activity.
func (t *Tracker) Deadline(userID string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	last, ok := t.last[userID]
	if !ok {
		return time.Time{}, false
	}
	return last.Add(t.timeout), true
}

// Expired reports whether the user's idle time has exceeded the timeout.
// A user with no recorded activity is not expired.
func (t *Tracker) Expired(userID string) bool {
	deadline, ok := t.Deadline(userID)
	if !ok {
		return false
	}
	return !t.now().Before(deadline)
}

// Forget drops the user's activity record, typically after handling expiry.
func (t *Tracker) Forget(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.last, userID)
}

// Watch polls for expired sessions at the given interval and sends each
// expired user id once on the returned channel. It stops when the context
// is cancelled and closes the channel.
func (t *Tracker) Watch(ctx context.Context, interval time.Duration) <-chan string {
	expired := make(chan string)

	go func() {
		defer close(expired)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, id := range t.sweep() {
					select {
					case expired <- id:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return expired
}

// sweep collects and forgets every expired user.
func (t *Tracker) sweep() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	var out []string
	for id, last := range t.last {
		if !now.Before(last.Add(t.timeout)) {
			out = append(out, id)
			delete(t.last, id)
		}
	}
	return out
}
