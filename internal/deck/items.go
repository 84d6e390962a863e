package deck

// WalkItems visits every item of the slide depth-first. depth is 0 for
// top-level items. Returning false from fn stops the walk.
func (sl *Slide) WalkItems(fn func(item *Item, depth int) bool) {
	var walk func(items []Item, depth int) bool
	walk = func(items []Item, depth int) bool {
		for i := range items {
			if !fn(&items[i], depth) {
				return false
			}
			if !walk(items[i].Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(sl.Items, 0)
}

// FindItem returns the item with the given id anywhere in the tree
func (sl *Slide) FindItem(id string) (*Item, bool) {
	var found *Item
	sl.WalkItems(func(item *Item, _ int) bool {
		if item.ID == id {
			found = item
			return false
		}
		return true
	})
	return found, found != nil
}

// ItemIDs returns every widget id of the slide in tree order
func (sl *Slide) ItemIDs() []string {
	var ids []string
	sl.WalkItems(func(item *Item, _ int) bool {
		ids = append(ids, item.ID)
		return true
	})
	return ids
}
