// Package watchlist holds the session-local "My List" of saved titles.
package watchlist

// Watchlist is an ordered set of content identifiers.
// Adds keep insertion order and removals keep survivors in relative order.
// No identifier appears twice. It is not safe for concurrent use; the
// owning screen mutates it from the UI loop only.
type Watchlist struct {
	ids     []string
	members map[string]bool
}

// New creates a watchlist seeded with ids in order, skipping duplicates
func New(ids ...string) *Watchlist {
	w := &Watchlist{members: make(map[string]bool, len(ids))}
	for _, id := range ids {
		w.Add(id)
	}
	return w
}

// Add appends id if absent. It returns true when the list changed.
func (w *Watchlist) Add(id string) bool {
	if id == "" || w.members[id] {
		return false
	}
	w.members[id] = true
	w.ids = append(w.ids, id)
	return true
}

// Remove drops id. It returns true when the list changed.
func (w *Watchlist) Remove(id string) bool {
	if !w.members[id] {
		return false
	}
	delete(w.members, id)

	kept := w.ids[:0]
	for _, existing := range w.ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	w.ids = kept
	return true
}

// Toggle adds or removes id and returns the resulting membership
func (w *Watchlist) Toggle(id string) bool {
	if w.Contains(id) {
		w.Remove(id)
		return false
	}
	w.Add(id)
	return w.Contains(id)
}

// Contains reports membership
func (w *Watchlist) Contains(id string) bool {
	return w.members[id]
}

// IDs returns a copy of the identifiers in list order
func (w *Watchlist) IDs() []string {
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}

// Len returns the number of saved titles
func (w *Watchlist) Len() int {
	return len(w.ids)
}
