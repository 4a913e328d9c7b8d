// Package panes implements the pane variants of Third Eye and the registry
// that creates them by kind and restores them from a saved layout.
package panes

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"thirdeye/internal/app"
)

// ErrUnknownKind is returned when decoding a pane whose kind is not
// registered, for example a layout written by a newer version.
var ErrUnknownKind = errors.New("unknown pane kind")

const (
	KindWelcome   = "welcome"
	KindAbout     = "about"
	KindNoStorage = "noStorage"
	KindJournal   = "journal"
)

// Constructor returns a fresh, default-initialized pane.
type Constructor func() app.Pane

// Entry is one line of the add-pane menu.
type Entry struct {
	Name string
	Kind string
	New  Constructor
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
	creatable  []Entry
)

func init() {
	Register(KindWelcome, func() app.Pane { return &Welcome{} })
	Register(KindAbout, func() app.Pane { return &About{} })
	Register(KindNoStorage, func() app.Pane { return &NoStorage{} })
	Register(KindJournal, func() app.Pane { return &Journal{} })

	creatable = []Entry{
		{Name: "Welcome", Kind: KindWelcome},
		{Name: "Journal", Kind: KindJournal},
		{Name: "About", Kind: KindAbout},
	}
}

// Register makes kind constructible. Registering a kind twice replaces the
// constructor.
func Register(kind string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = c
}

// New constructs a pane of the given kind.
func New(kind string) (app.Pane, error) {
	registryMu.RLock()
	c, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return c(), nil
}

// Creatable returns the panes a user may add, in menu order.
func Creatable() []Entry {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Entry, 0, len(creatable))
	for _, e := range creatable {
		e.New = registry[e.Kind]
		out = append(out, e)
	}
	return out
}

// envelope is the persisted form of a pane.
type envelope struct {
	Kind  string          `json:"kind"`
	State json.RawMessage `json:"state,omitempty"`
}

// Catalog is the app.Catalog backed by the registry.
type Catalog struct{}

var _ app.Catalog = Catalog{}

func (Catalog) Encode(p app.Pane) (json.RawMessage, error) {
	if p == nil {
		return nil, errors.New("encode pane: nil pane")
	}
	state, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode pane %s: %w", p.Kind(), err)
	}
	return json.Marshal(envelope{Kind: p.Kind(), State: state})
}

func (Catalog) Decode(raw json.RawMessage) (app.Pane, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode pane: %w", err)
	}
	p, err := New(env.Kind)
	if err != nil {
		return nil, err
	}
	if len(env.State) > 0 && string(env.State) != "null" {
		if err := json.Unmarshal(env.State, p); err != nil {
			return nil, fmt.Errorf("decode pane %s: %w", env.Kind, err)
		}
	}
	return p, nil
}

func (Catalog) Welcome() app.Pane   { return &Welcome{} }
func (Catalog) LoadError() app.Pane { return &NoStorage{} }
