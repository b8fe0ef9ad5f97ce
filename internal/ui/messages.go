package ui

import (
	"time"

	"pageturn/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg drives the frame loop
type tickMsg time.Time

// clearStatusMsg expires a transient status message
type clearStatusMsg struct{}
