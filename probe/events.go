package probe

import "time"

type EventKind string

const (
	EventControllerAttached EventKind = "attached"
	EventControllerDetached EventKind = "detached"
	EventNotification       EventKind = "notification"
)

// Event is a hotplug or helper notification observed between builds.
type Event struct {
	Kind       EventKind
	OccurredAt time.Time
	Source     string
	Payload    interface{}
}

// EventSubscription delivers events until closed. Slow consumers drop
// events rather than blocking the probe channel.
type EventSubscription interface {
	C() <-chan Event
	Close() error
}
