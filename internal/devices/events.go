package devices

import (
	"fmt"

	"github.com/google/uuid"
)

// EventKind enumerates the notifications a device emits.
type EventKind int

const (
	// EventHeartbeat fires on every successful, non-silent poll.
	EventHeartbeat EventKind = iota
	// EventChange fires after EventHeartbeat when the parsed reading differs
	// from the previous one by value.
	EventChange
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventHeartbeat:
		return "heartbeat"
	case EventChange:
		return "change"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is the payload delivered to handlers. Previous is set only for
// EventChange.
type Event struct {
	Kind     EventKind
	Device   *Device
	Data     any
	Previous any
}

// Handler consumes one event. Returning an error aborts the remaining
// handlers for the triggering poll and propagates out of Heartbeat.
type Handler func(Event) error

// Subscription identifies one registered handler so it can be removed later.
type Subscription struct {
	id   uuid.UUID
	kind EventKind
}

type registration struct {
	id      uuid.UUID
	handler Handler
}

// eventBus dispatches events synchronously, in registration order. The same
// handler may be registered more than once and then fires once per
// registration.
type eventBus struct {
	registrations map[EventKind][]registration
}

func newEventBus() *eventBus {
	return &eventBus{
		registrations: make(map[EventKind][]registration),
	}
}

func (b *eventBus) subscribe(kind EventKind, handler Handler) Subscription {
	reg := registration{id: uuid.New(), handler: handler}
	b.registrations[kind] = append(b.registrations[kind], reg)
	return Subscription{id: reg.id, kind: kind}
}

func (b *eventBus) unsubscribe(sub Subscription) bool {
	regs := b.registrations[sub.kind]
	for i, reg := range regs {
		if reg.id == sub.id {
			b.registrations[sub.kind] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

func (b *eventBus) publish(ev Event) error {
	for _, reg := range b.registrations[ev.Kind] {
		if err := reg.handler(ev); err != nil {
			return fmt.Errorf("%s handler failed: %w", ev.Kind, err)
		}
	}
	return nil
}
