package notifymock

import (
	"context"
	"sync"

	"motac-hrms/internal/usecase/notification"
)

var _ notification.Notifier = (*Notifier)(nil)

// Notifier records every event it receives; safe for concurrent use.
type Notifier struct {
	mu     sync.Mutex
	Events []notification.Event
}

func (n *Notifier) Notify(ctx context.Context, ev notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, ev)
}

func (n *Notifier) Count(t notification.EventType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, ev := range n.Events {
		if ev.Type == t {
			count++
		}
	}
	return count
}
