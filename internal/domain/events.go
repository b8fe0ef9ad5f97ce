package domain

import "image"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDocumentOpened     EventType = "DocumentOpened"
	EventDocumentOpenFailed EventType = "DocumentOpenFailed"
	EventDocumentClosed     EventType = "DocumentClosed"
	EventRenderRequested    EventType = "RenderRequested"
	EventPageRendered       EventType = "PageRendered"
	EventRenderFailed       EventType = "RenderFailed"
	EventCacheInvalidated   EventType = "CacheInvalidated"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DocumentOpenedEvent is emitted when a document session starts
type DocumentOpenedEvent struct {
	Path      string
	PageCount int
}

func (e DocumentOpenedEvent) Type() EventType { return EventDocumentOpened }

// DocumentOpenFailedEvent is emitted when opening a document fails.
// No viewer session is created for the path.
type DocumentOpenFailedEvent struct {
	Path string
	Err  error
}

func (e DocumentOpenFailedEvent) Type() EventType { return EventDocumentOpenFailed }

// DocumentClosedEvent is emitted when the current session ends
type DocumentClosedEvent struct {
	Path string
}

func (e DocumentClosedEvent) Type() EventType { return EventDocumentClosed }

// RenderRequestedEvent asks the render service for a bitmap off the frame thread
type RenderRequestedEvent struct {
	Key        RenderKey
	Generation uint64 // cache generation the request belongs to
	Prefetch   bool   // best-effort request; failures stay silent
}

func (e RenderRequestedEvent) Type() EventType { return EventRenderRequested }

// PageRenderedEvent carries a finished bitmap back to the frame thread
type PageRenderedEvent struct {
	Key        RenderKey
	Generation uint64
	Bitmap     *image.RGBA
}

func (e PageRenderedEvent) Type() EventType { return EventPageRendered }

// RenderFailedEvent is emitted when a page fails to rasterize.
// The cache keeps no entry for the key; the UI shows a placeholder.
type RenderFailedEvent struct {
	Key      RenderKey
	Prefetch bool
	Err      error
}

func (e RenderFailedEvent) Type() EventType { return EventRenderFailed }

// CacheInvalidatedEvent is emitted after entries were dropped (rotation
// change, document close), so views re-request what they still need.
type CacheInvalidatedEvent struct {
	Remaining int
}

func (e CacheInvalidatedEvent) Type() EventType { return EventCacheInvalidated }

// ErrorEvent is emitted when a user-visible error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
