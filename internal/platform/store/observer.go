package store

import "time"

// Action names a committed mutation.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ChangeEvent describes one committed mutation.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Action     Action    `json:"action"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

// Observer is notified after a mutation has been written through. It is
// called with the collection lock held and must not call back into it.
type Observer interface {
	Changed(ev ChangeEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev ChangeEvent)

func (f ObserverFunc) Changed(ev ChangeEvent) { f(ev) }

// Observers fans one event out to several observers; nil entries are skipped.
func Observers(obs ...Observer) Observer {
	return ObserverFunc(func(ev ChangeEvent) {
		for _, o := range obs {
			if o != nil {
				o.Changed(ev)
			}
		}
	})
}
