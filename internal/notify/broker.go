// Package notify fans watcher events out to the window as widget commands.
package notify

import (
	"sync/atomic"
	"time"

	"github.com/starford/stickynote/internal/index"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/widget"
)

// clientBuffer is the per-subscriber queue length. Events beyond it are
// dropped rather than blocking the watcher.
const clientBuffer = 64

type noteEventReq struct {
	kind index.EventKind
	id   models.NoteID
}

// Broker delivers note events to subscribers.
//
// Concurrency model: a single internal event loop (goroutine) owns mutable state
// (clients, per-note update timestamps and pending trailing updates). Public methods communicate with this
// loop through channels, so no mutexes are required.
type Broker struct {
	coalesce time.Duration

	subscribeCh   chan chan widget.Command
	unsubscribeCh chan chan widget.Command
	noteEventCh   chan noteEventReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker that collapses repeated updates of one note
// arriving within coalesce of each other. The last collapsed update is
// delivered once the window closes.
func NewBroker(coalesce time.Duration) *Broker {
	if coalesce < 0 {
		coalesce = 0
	}

	b := &Broker{
		coalesce:      coalesce,
		subscribeCh:   make(chan chan widget.Command),
		unsubscribeCh: make(chan chan widget.Command),
		noteEventCh:   make(chan noteEventReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

// Command maps a watcher event onto the widget command that reconciles it.
func Command(kind index.EventKind, id models.NoteID) widget.Command {
	op := widget.ExternalUpsert
	if kind == index.EventDeleted {
		op = widget.ExternalRemove
	}
	return widget.Command{Kind: widget.CmdExternal, Op: op, ID: id}
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan widget.Command]struct{})
	lastUpdate := make(map[models.NoteID]time.Time)
	// pending holds notes whose update was held back by the coalesce window
	// and still owes one trailing delivery.
	pending := make(map[models.NoteID]struct{})
	var flushC <-chan time.Time

	broadcast := func(cmd widget.Command) {
		for ch := range clients {
			select {
			case ch <- cmd:
			default:
			}
		}
	}

	// flushDue sends the trailing update of every note whose window has
	// closed and rearms the timer for the earliest one still open.
	flushDue := func(now time.Time) {
		flushC = nil
		wait := time.Duration(-1)
		for id := range pending {
			left := b.coalesce - now.Sub(lastUpdate[id])
			if left <= 0 {
				delete(pending, id)
				lastUpdate[id] = now
				broadcast(Command(index.EventUpdated, id))
				continue
			}
			if wait < 0 || left < wait {
				wait = left
			}
		}
		if wait >= 0 {
			flushC = time.After(wait)
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case now := <-flushC:
			flushDue(now)

		case req := <-b.noteEventCh:
			now := time.Now()
			switch req.kind {
			case index.EventUpdated:
				if last, ok := lastUpdate[req.id]; ok && now.Sub(last) < b.coalesce {
					pending[req.id] = struct{}{}
					flushDue(now)
					continue
				}
				lastUpdate[req.id] = now
			case index.EventDeleted:
				delete(lastUpdate, req.id)
			default:
				lastUpdate[req.id] = now
			}
			delete(pending, req.id)
			broadcast(Command(req.kind, req.id))

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel.
func (b *Broker) Subscribe() chan widget.Command {
	ch := make(chan widget.Command, clientBuffer)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan widget.Command) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of subscribers.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// PublishNoteEvent queues a watcher event. It matches index.EventCallback.
func (b *Broker) PublishNoteEvent(kind index.EventKind, id models.NoteID) {
	if b.closed.Load() {
		return
	}
	select {
	case b.noteEventCh <- noteEventReq{kind: kind, id: id}:
	case <-b.stopped:
	}
}
