package tiles

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is the persisted form of a Tree. Pane payloads are encoded by the
// caller so the tree stays independent of the pane types it holds.
type Document struct {
	Root   TileID                  `json:"root,omitempty"`
	NextID TileID                  `json:"next_id"`
	Tiles  map[TileID]DocumentTile `json:"tiles"`
}

// DocumentTile holds exactly one of Pane or Container.
type DocumentTile struct {
	Pane      json.RawMessage `json:"pane,omitempty"`
	Container *Container      `json:"container,omitempty"`
}

// Encode converts the tree into a Document using enc for each pane.
func (t *Tree[P]) Encode(enc func(P) (json.RawMessage, error)) (Document, error) {
	doc := Document{NextID: t.next, Tiles: make(map[TileID]DocumentTile, len(t.tiles))}
	if root, ok := t.Root(); ok {
		doc.Root = root
	}
	for id, tile := range t.tiles {
		if tile.Container != nil {
			c := *tile.Container
			c.Children = append([]TileID(nil), tile.Container.Children...)
			doc.Tiles[id] = DocumentTile{Container: &c}
			continue
		}
		raw, err := enc(tile.Pane)
		if err != nil {
			return Document{}, fmt.Errorf("encode pane %d: %w", id, err)
		}
		doc.Tiles[id] = DocumentTile{Pane: raw}
	}
	return doc, nil
}

// Decode rebuilds a tree from doc. Any pane that dec rejects fails the whole
// decode; a partially restored layout is never returned.
func Decode[P any](doc Document, dec func(json.RawMessage) (P, error)) (*Tree[P], error) {
	t := New[P]()
	parents := make(map[TileID]TileID)

	for id, dt := range doc.Tiles {
		if id == 0 {
			return nil, errors.New("layout: tile id 0 is reserved")
		}
		hasPane := len(dt.Pane) > 0 && string(dt.Pane) != "null"
		if hasPane == (dt.Container != nil) {
			return nil, fmt.Errorf("layout: tile %d must hold exactly one of pane or container", id)
		}
		if dt.Container != nil {
			c := *dt.Container
			c.Children = append([]TileID(nil), dt.Container.Children...)
			for _, ch := range c.Children {
				if _, ok := doc.Tiles[ch]; !ok {
					return nil, fmt.Errorf("layout: tile %d references missing child %d", id, ch)
				}
				if prev, dup := parents[ch]; dup {
					return nil, fmt.Errorf("layout: tile %d has two parents (%d, %d)", ch, prev, id)
				}
				parents[ch] = id
			}
			t.tiles[id] = &Tile[P]{Container: &c}
		} else {
			p, err := dec(dt.Pane)
			if err != nil {
				return nil, fmt.Errorf("layout: pane %d: %w", id, err)
			}
			t.tiles[id] = &Tile[P]{Pane: p}
		}
		if id >= t.next {
			t.next = id + 1
		}
	}
	if doc.NextID > t.next {
		t.next = doc.NextID
	}

	if doc.Root != 0 {
		if _, ok := t.tiles[doc.Root]; !ok {
			return nil, fmt.Errorf("layout: root %d does not exist", doc.Root)
		}
		if p, ok := parents[doc.Root]; ok {
			return nil, fmt.Errorf("layout: root %d is a child of %d", doc.Root, p)
		}
		t.root = doc.Root
	}

	t.Simplify()
	return t, nil
}
