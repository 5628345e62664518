// Package events announces changes to TMLs, measurements and
// classifications so downstream consumers can refresh their views.
package events

import (
	"context"
	"time"
)

const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     int64     `json:"id"`
	At     time.Time `json:"at"`
	Data   any       `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close()
}

// Nop drops every event. Used when EVENTS_ENABLED is off.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close()                               {}
