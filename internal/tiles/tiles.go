// Package tiles is the tile tree holding the pane layout: tab groups and
// horizontal/vertical splits whose leaves are panes.
//
// Tiles live in an arena keyed by TileID. Every mutation tolerates stale ids:
// an unknown id is reported as an error and leaves the tree unchanged.
package tiles

import (
	"errors"
	"fmt"
	"slices"
)

// TileID identifies a tile within one tree. Ids are never reused; zero is
// never a valid id.
type TileID uint64

var (
	ErrNotFound     = errors.New("tile not found")
	ErrNotContainer = errors.New("tile is not a container")
	ErrNotTabs      = errors.New("tile is not a tab group")
)

type ContainerKind int

const (
	Tabs ContainerKind = iota
	Horizontal
	Vertical
)

func (k ContainerKind) String() string {
	switch k {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "tabs"
	}
}

func (k ContainerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ContainerKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "tabs":
		*k = Tabs
	case "horizontal":
		*k = Horizontal
	case "vertical":
		*k = Vertical
	default:
		return fmt.Errorf("unknown container kind %q", b)
	}
	return nil
}

// Container groups child tiles. For Tabs, Active is the visible child.
type Container struct {
	Kind     ContainerKind `json:"kind"`
	Children []TileID      `json:"children"`
	Active   TileID        `json:"active,omitempty"`
}

func (c *Container) addChild(id TileID) {
	c.Children = append(c.Children, id)
	if c.Kind == Tabs && c.Active == 0 {
		c.Active = id
	}
}

func (c *Container) removeChild(id TileID) bool {
	i := slices.Index(c.Children, id)
	if i < 0 {
		return false
	}
	c.Children = slices.Delete(c.Children, i, i+1)
	if c.Active == id {
		c.Active = 0
		if len(c.Children) > 0 {
			c.Active = c.Children[min(i, len(c.Children)-1)]
		}
	}
	return true
}

// Tile is either a pane leaf or a container.
type Tile[P any] struct {
	Pane      P
	Container *Container
}

func (t *Tile[P]) IsContainer() bool { return t.Container != nil }

type Tree[P any] struct {
	tiles map[TileID]*Tile[P]
	root  TileID
	next  TileID
}

func New[P any]() *Tree[P] {
	return &Tree[P]{tiles: map[TileID]*Tile[P]{}, next: 1}
}

// NewTabs returns a tree whose root is a single tab group holding panes.
func NewTabs[P any](panes ...P) *Tree[P] {
	t := New[P]()
	ids := make([]TileID, 0, len(panes))
	for _, p := range panes {
		ids = append(ids, t.InsertPane(p))
	}
	t.root = t.InsertContainer(Tabs, ids...)
	return t
}

func (t *Tree[P]) alloc() TileID {
	id := t.next
	t.next++
	return id
}

// InsertPane adds a detached pane tile.
func (t *Tree[P]) InsertPane(p P) TileID {
	id := t.alloc()
	t.tiles[id] = &Tile[P]{Pane: p}
	return id
}

// InsertContainer adds a detached container with the given children.
func (t *Tree[P]) InsertContainer(kind ContainerKind, children ...TileID) TileID {
	id := t.alloc()
	c := &Container{Kind: kind}
	for _, ch := range children {
		c.addChild(ch)
	}
	t.tiles[id] = &Tile[P]{Container: c}
	return id
}

func (t *Tree[P]) Get(id TileID) (*Tile[P], bool) {
	tile, ok := t.tiles[id]
	return tile, ok
}

// Container returns the container stored at id.
func (t *Tree[P]) Container(id TileID) (*Container, error) {
	tile, ok := t.tiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if tile.Container == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotContainer, id)
	}
	return tile.Container, nil
}

func (t *Tree[P]) Root() (TileID, bool) {
	if t.root == 0 {
		return 0, false
	}
	_, ok := t.tiles[t.root]
	return t.root, ok
}

func (t *Tree[P]) SetRoot(id TileID) { t.root = id }

func (t *Tree[P]) IsEmpty() bool {
	_, ok := t.Root()
	return !ok
}

// Len is the number of tiles in the arena.
func (t *Tree[P]) Len() int { return len(t.tiles) }

// Parent returns the container holding id.
func (t *Tree[P]) Parent(id TileID) (TileID, bool) {
	for pid, tile := range t.tiles {
		if tile.Container != nil && slices.Contains(tile.Container.Children, id) {
			return pid, true
		}
	}
	return 0, false
}

// AddChild appends child to the container parent. Unknown ids and
// non-container parents are errors and leave the tree unchanged.
func (t *Tree[P]) AddChild(parent, child TileID) error {
	c, err := t.Container(parent)
	if err != nil {
		return err
	}
	if _, ok := t.tiles[child]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, child)
	}
	if _, attached := t.Parent(child); attached || child == t.root || child == parent {
		return fmt.Errorf("tile %d is already attached", child)
	}
	c.addChild(child)
	return nil
}

// SetActive makes child the visible tab of the tab group tabs.
func (t *Tree[P]) SetActive(tabs, child TileID) error {
	c, err := t.Container(tabs)
	if err != nil {
		return err
	}
	if c.Kind != Tabs {
		return fmt.Errorf("%w: %d", ErrNotTabs, tabs)
	}
	if !slices.Contains(c.Children, child) {
		return fmt.Errorf("%w: %d in %d", ErrNotFound, child, tabs)
	}
	c.Active = child
	return nil
}

// Remove deletes id and its subtree, detaching it from its parent, then
// simplifies the tree.
func (t *Tree[P]) Remove(id TileID) error {
	if _, ok := t.tiles[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if pid, ok := t.Parent(id); ok {
		t.tiles[pid].Container.removeChild(id)
	}
	if t.root == id {
		t.root = 0
	}
	t.deleteSubtree(id)
	t.Simplify()
	return nil
}

// CloseTab removes the pane tile id. Its tab group picks a neighbouring tab
// as active, and a group left without tabs disappears.
func (t *Tree[P]) CloseTab(id TileID) error {
	tile, ok := t.tiles[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if tile.Container != nil {
		return fmt.Errorf("tile %d is not a tab", id)
	}
	return t.Remove(id)
}

func (t *Tree[P]) deleteSubtree(id TileID) {
	tile, ok := t.tiles[id]
	if !ok {
		return
	}
	delete(t.tiles, id)
	if tile.Container != nil {
		for _, ch := range tile.Container.Children {
			t.deleteSubtree(ch)
		}
	}
}

// Split moves the active tab of the tab group tabs into a new tab group
// placed after it, splitting along dir (Horizontal: side by side, Vertical:
// stacked). It returns the new tab group. A group with a single tab cannot
// be split.
func (t *Tree[P]) Split(tabs TileID, dir ContainerKind) (TileID, error) {
	c, err := t.Container(tabs)
	if err != nil {
		return 0, err
	}
	if c.Kind != Tabs {
		return 0, fmt.Errorf("%w: %d", ErrNotTabs, tabs)
	}
	if dir == Tabs {
		return 0, errors.New("split direction must be horizontal or vertical")
	}
	if len(c.Children) < 2 {
		return 0, errors.New("cannot split a tab group with a single tab")
	}

	moved := c.Active
	if moved == 0 {
		moved = c.Children[len(c.Children)-1]
	}
	c.removeChild(moved)
	newTabs := t.InsertContainer(Tabs, moved)

	if pid, ok := t.Parent(tabs); ok {
		parent := t.tiles[pid].Container
		if parent.Kind == dir {
			i := slices.Index(parent.Children, tabs)
			parent.Children = slices.Insert(parent.Children, i+1, newTabs)
			return newTabs, nil
		}
		split := t.InsertContainer(dir, tabs, newTabs)
		i := slices.Index(parent.Children, tabs)
		parent.Children[i] = split
		if parent.Active == tabs {
			parent.Active = split
		}
		return newTabs, nil
	}

	split := t.InsertContainer(dir, tabs, newTabs)
	t.root = split
	return newTabs, nil
}

// Walk visits tiles reachable from the root depth-first, parents before
// children.
func (t *Tree[P]) Walk(fn func(id TileID, tile *Tile[P])) {
	root, ok := t.Root()
	if !ok {
		return
	}
	seen := map[TileID]bool{}
	var visit func(TileID)
	visit = func(id TileID) {
		tile, ok := t.tiles[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		fn(id, tile)
		if tile.Container != nil {
			for _, ch := range tile.Container.Children {
				visit(ch)
			}
		}
	}
	visit(root)
}

// Panes returns the reachable pane tiles in depth-first order.
func (t *Tree[P]) Panes() []TileID {
	var out []TileID
	t.Walk(func(id TileID, tile *Tile[P]) {
		if tile.Container == nil {
			out = append(out, id)
		}
	})
	return out
}

// TabGroups returns the reachable tab containers in depth-first order.
func (t *Tree[P]) TabGroups() []TileID {
	var out []TileID
	t.Walk(func(id TileID, tile *Tile[P]) {
		if tile.Container != nil && tile.Container.Kind == Tabs {
			out = append(out, id)
		}
	})
	return out
}
