package engine

import "sync"

// Event names a lifecycle notification an engine can emit.
type Event string

const (
	EventReady         Event = "ready"
	EventError         Event = "error"
	EventLoadProgress  Event = "load-progress"
	EventLevelChange   Event = "level-change"
	EventGalleryChange Event = "gallery-change"
)

// Payload carries event data. Only the fields relevant to the event are
// set: Err for EventError, Progress for EventLoadProgress, Level for
// EventLevelChange, Gallery for EventGalleryChange.
type Payload struct {
	Err      error
	Progress int
	Level    int
	Gallery  int
}

// Handler receives an event's payload. Handlers are invoked synchronously
// with respect to the triggering step and must not block.
type Handler func(Payload)

// handlerTable is the single-slot event registry shared by the adapters:
// one handler per event, last-write-wins. Replace-not-append is a
// documented contract, not a simplification to fix; call sites rely on it.
// Lifetime is bound to the engine instance; clear on disposal.
type handlerTable struct {
	mu       sync.RWMutex
	handlers map[Event]Handler
}

func newHandlerTable() *handlerTable {
	return &handlerTable{handlers: make(map[Event]Handler)}
}

// set installs the handler for an event, replacing any previous one.
// A nil handler clears the slot.
func (t *handlerTable) set(ev Event, h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h == nil {
		delete(t.handlers, ev)
		return
	}
	t.handlers[ev] = h
}

// remove clears the handler slot for an event.
func (t *handlerTable) remove(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.handlers, ev)
}

// emit invokes the registered handler for an event, if any.
func (t *handlerTable) emit(ev Event, p Payload) {
	t.mu.RLock()
	h := t.handlers[ev]
	t.mu.RUnlock()

	if h != nil {
		h(p)
	}
}

// clear drops every registered handler.
func (t *handlerTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = make(map[Event]Handler)
}
