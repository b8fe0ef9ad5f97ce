package render

import (
	"log"
	"sync"

	"pageturn/internal/cache"
	"pageturn/internal/eventbus"
)

// Service executes render requests off the frame thread. It subscribes to
// the bus, resolves bitmaps through the page cache (which deduplicates
// per-key work), and publishes completions back to the UI. The frame
// thread itself only renders synchronously when a flip target must exist
// before the flip starts.
type Service interface {
	SetSession(c *cache.PageCache)
}

type service struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	session    *cache.PageCache
	workerPool chan struct{} // Semaphore for limiting concurrent renders
}

// NewService creates a render service. It subscribes to events
// automatically, like the other background services.
func NewService(bus eventbus.EventBus) Service {
	s := &service{
		bus:        bus,
		workerPool: make(chan struct{}, 3), // Rasterization is CPU-bound; keep the pool small
	}

	bus.Subscribe(eventbus.EventRenderRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RenderRequestedEvent); ok {
			go s.handleRequest(event)
		}
	})

	bus.Subscribe(eventbus.EventDocumentClosed, func(e eventbus.DomainEvent) {
		if _, ok := e.(eventbus.DocumentClosedEvent); ok {
			s.mu.Lock()
			s.session = nil
			s.mu.Unlock()
		}
	})

	return s
}

// SetSession binds the service to the cache of the newly opened document.
// At most one document session is active at a time.
func (s *service) SetSession(c *cache.PageCache) {
	s.mu.Lock()
	s.session = c
	s.mu.Unlock()
}

func (s *service) handleRequest(event eventbus.RenderRequestedEvent) {
	s.mu.Lock()
	c := s.session
	s.mu.Unlock()
	if c == nil {
		log.Printf("debug: render request for %s with no open document", event.Key)
		return
	}
	if event.Generation != c.Generation() {
		// The session context moved on (rotation change, invalidation)
		// before this request even started.
		log.Printf("debug: dropping stale render request for %s", event.Key)
		return
	}

	s.workerPool <- struct{}{}
	defer func() { <-s.workerPool }()

	bitmap, err := c.GetOrRender(event.Key)
	if err != nil {
		if event.Prefetch {
			// Prefetch is best effort; nobody is waiting for this page.
			return
		}
		log.Printf("Render failed for %s: %v", event.Key, err)
		s.bus.Publish(eventbus.RenderFailedEvent{Key: event.Key, Prefetch: false, Err: err})
		return
	}

	if event.Generation != c.Generation() {
		log.Printf("debug: discarding stale render completion for %s", event.Key)
		return
	}

	s.bus.Publish(eventbus.PageRenderedEvent{
		Key:        event.Key,
		Generation: event.Generation,
		Bitmap:     bitmap,
	})
}
