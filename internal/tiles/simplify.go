package tiles

import "slices"

// noParent marks the root when simplifying.
const noParent ContainerKind = -1

// Simplify restores the structural invariants after a mutation:
//
//   - every pane sits directly inside a tab group
//   - empty containers are removed
//   - a split with a single child is replaced by that child
//   - a container nested in one of the same kind is flattened (tabs in
//     tabs join the outer group, keeping the inner active tab visible)
//   - child ids that no longer exist are dropped
//   - tiles unreachable from the root are discarded
func (t *Tree[P]) Simplify() {
	if root, ok := t.Root(); ok {
		if id, keep := t.simplify(root, noParent); keep {
			t.root = id
		} else {
			t.root = 0
		}
	} else {
		t.root = 0
	}
	t.gc()
}

func (t *Tree[P]) simplify(id TileID, parentKind ContainerKind) (TileID, bool) {
	tile, ok := t.tiles[id]
	if !ok {
		return 0, false
	}
	if tile.Container == nil {
		if parentKind == Tabs {
			return id, true
		}
		return t.InsertContainer(Tabs, id), true
	}

	c := tile.Container
	children := make([]TileID, 0, len(c.Children))
	for _, ch := range c.Children {
		nid, keep := t.simplify(ch, c.Kind)
		if !keep {
			continue
		}
		if sub := t.tiles[nid].Container; sub != nil && sub.Kind == c.Kind {
			if c.Kind == Tabs && c.Active == ch {
				c.Active = sub.Active
			}
			children = append(children, sub.Children...)
			delete(t.tiles, nid)
			continue
		}
		if c.Active == ch {
			c.Active = nid
		}
		children = append(children, nid)
	}
	c.Children = children

	if len(children) == 0 {
		delete(t.tiles, id)
		return 0, false
	}
	if c.Kind == Tabs {
		if !slices.Contains(children, c.Active) {
			c.Active = children[0]
		}
		return id, true
	}
	c.Active = 0
	if len(children) == 1 {
		delete(t.tiles, id)
		return children[0], true
	}
	return id, true
}

func (t *Tree[P]) gc() {
	reachable := make(map[TileID]bool, len(t.tiles))
	t.Walk(func(id TileID, _ *Tile[P]) { reachable[id] = true })
	for id := range t.tiles {
		if !reachable[id] {
			delete(t.tiles, id)
		}
	}
}
