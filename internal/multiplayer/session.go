package multiplayer

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultInboxCapacity is used when an inbox is created without a size.
const DefaultInboxCapacity = 64

// ErrDuplicateSession is returned when a session id is already registered.
var ErrDuplicateSession = errors.New("multiplayer: session already registered")

// Client is whoever holds seats at a table: a terminal, a script, a bot.
// Tables only push events to it and never wait on it.
type Client interface {
	ID() SessionID

	// Send queues a table event. It must not block.
	Send(evt SessionEvent)

	// Done closes when the client goes away.
	Done() <-chan struct{}
}

// Inbox is a Client that queues table events until its owner drains them.
// A full inbox drops its oldest event, so a slow reader only loses history.
type Inbox struct {
	id      SessionID
	events  chan SessionEvent
	done    chan struct{}
	closed  sync.Once
	mu      sync.Mutex
	dropped int
}

// NewInbox creates an inbox holding up to capacity events.
func NewInbox(id SessionID, capacity int) *Inbox {
	if capacity < 1 {
		capacity = DefaultInboxCapacity
	}
	return &Inbox{
		id:     id,
		events: make(chan SessionEvent, capacity),
		done:   make(chan struct{}),
	}
}

func (in *Inbox) ID() SessionID {
	return in.id
}

// Send queues evt. Events sent after Close are discarded.
func (in *Inbox) Send(evt SessionEvent) {
	select {
	case <-in.done:
		return
	default:
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	for {
		select {
		case in.events <- evt:
			return
		default:
		}
		select {
		case <-in.events:
			in.dropped++
		default:
		}
	}
}

// Drain returns the queued events in arrival order without blocking.
func (in *Inbox) Drain() []SessionEvent {
	var out []SessionEvent
	for {
		select {
		case evt := <-in.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Dropped returns how many events were lost to a full inbox.
func (in *Inbox) Dropped() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dropped
}

func (in *Inbox) Done() <-chan struct{} {
	return in.done
}

// Close stops the inbox from accepting events. Safe to call more than once.
func (in *Inbox) Close() {
	in.closed.Do(func() { close(in.done) })
}

// SessionRegistry maps session ids to the clients tables deliver to.
// Safe for concurrent use.
type SessionRegistry struct {
	mu      sync.RWMutex
	clients map[SessionID]Client
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{clients: make(map[SessionID]Client)}
}

// Register adds c. An id already in use is rejected so seat events are
// never rerouted to a different client.
func (r *SessionRegistry) Register(c Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, c.ID())
	}
	r.clients[c.ID()] = c
	return nil
}

func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

func (r *SessionRegistry) Get(id SessionID) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// send delivers evt to each listed client that is still registered and
// has not gone away.
func (r *SessionRegistry) send(evt SessionEvent, ids ...SessionID) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range ids {
		c, ok := r.clients[id]
		if !ok {
			continue
		}
		select {
		case <-c.Done():
		default:
			c.Send(evt)
		}
	}
}
