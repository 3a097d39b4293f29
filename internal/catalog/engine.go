// Package catalog is the query and projection engine over the catalog store.
//
// Listings resolve raw parameters into a query variant (filter.go), narrow or
// pivot through the store (query.go) and shape the loaded graph into response
// views (projection.go). Attach and the create/update/delete operations check
// existence and identifiers before touching the store and publish an Event on
// success.
package catalog

import (
	"time"

	"go.uber.org/zap"

	"cataloghub/internal/store"
)

// Event describes a committed catalog change.
type Event struct {
	Type      string    `json:"type"`
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	RelatedID int64     `json:"related_id,omitempty"`
	Label     string    `json:"label,omitempty"`
	At        time.Time `json:"at"`
}

const (
	EventWorkCreated      = "work.created"
	EventWorkUpdated      = "work.updated"
	EventWorkDeleted      = "work.deleted"
	EventCharacterCreated = "character.created"
	EventCharacterUpdated = "character.updated"
	EventCharacterDeleted = "character.deleted"
	EventGenreCreated     = "genre.created"
	EventGenreUpdated     = "genre.updated"
	EventGenreDeleted     = "genre.deleted"
	EventGenreAttached    = "work.genre_attached"
	EventWorkAttached     = "character.work_attached"
)

// Publisher receives change events. Publish must not block on slow
// subscribers.
type Publisher interface {
	Publish(Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Event)

func (f PublisherFunc) Publish(e Event) { f(e) }

// Publishers fans each event out in order.
type Publishers []Publisher

func (ps Publishers) Publish(e Event) {
	for _, p := range ps {
		p.Publish(e)
	}
}

// Outcome is the result of a mutation or attach.
type Outcome struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

// Engine runs catalog operations against a Store. It keeps no state between
// calls.
type Engine struct {
	Store  store.Store
	Log    *zap.Logger
	Events Publisher
}

// NewEngine wires an engine. A nil logger or publisher is replaced by a no-op.
func NewEngine(st store.Store, log *zap.Logger, events Publisher) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if events == nil {
		events = PublisherFunc(func(Event) {})
	}
	return &Engine{Store: st, Log: log, Events: events}
}

func (e *Engine) publish(typ, kind string, id, related int64, label string) {
	e.Events.Publish(Event{
		Type:      typ,
		Kind:      kind,
		ID:        id,
		RelatedID: related,
		Label:     label,
		At:        time.Now().UTC(),
	})
}
