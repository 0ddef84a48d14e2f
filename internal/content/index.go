package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateID is returned when two items share an identifier.
var ErrDuplicateID = errors.New("duplicate content identifier")

// Index maps identifiers to content items. It is built once per generation
// and is read-only afterwards.
//
// Lookups that miss the exact key fall back to a suffix match. Candidate
// keys are ordered by length, then lexicographically, so the shortest
// matching identifier wins and ties never depend on map iteration order.
type Index struct {
	items map[string]Item
	keys  []string
}

// NewIndex builds an index from items.
func NewIndex(items ...Item) (*Index, error) {
	idx := &Index{
		items: make(map[string]Item, len(items)),
		keys:  make([]string, 0, len(items)),
	}
	for _, item := range items {
		id := item.Identifier()
		if _, ok := idx.items[id]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		idx.items[id] = item
		idx.keys = append(idx.keys, id)
	}
	sort.Slice(idx.keys, func(i, j int) bool {
		a, b := idx.keys[i], idx.keys[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return idx, nil
}

// Len reports the number of items in the index.
func (idx *Index) Len() int { return len(idx.items) }

// Get returns the item stored under exactly id.
func (idx *Index) Get(id string) (Item, bool) {
	item, ok := idx.items[id]
	return item, ok
}

// Resolve returns the item id refers to, of any kind.
func (idx *Index) Resolve(id string) (Item, bool) {
	if id == "" {
		return nil, false
	}
	if item, ok := idx.items[id]; ok {
		return item, true
	}
	for _, key := range idx.keys {
		if strings.HasSuffix(key, id) {
			return idx.items[key], true
		}
	}
	return nil, false
}

// Lookup resolves id and reports it only when the item is of the requested
// kind. A kind mismatch is treated as absence.
func (idx *Index) Lookup(kind Kind, id string) (Item, bool) {
	item, ok := idx.Resolve(id)
	if !ok || item.Kind() != kind {
		return nil, false
	}
	return item, true
}

// Article resolves id to an article.
func (idx *Index) Article(id string) (*Article, bool) {
	item, ok := idx.Lookup(KindArticle, id)
	if !ok {
		return nil, false
	}
	return item.(*Article), true
}

// Asset resolves id to an asset.
func (idx *Index) Asset(id string) (*Asset, bool) {
	item, ok := idx.Lookup(KindAsset, id)
	if !ok {
		return nil, false
	}
	return item.(*Asset), true
}

// Articles returns every article sorted by identifier.
func (idx *Index) Articles() []*Article {
	var out []*Article
	for _, id := range idx.sortedIDs() {
		if a, ok := idx.items[id].(*Article); ok {
			out = append(out, a)
		}
	}
	return out
}

// Assets returns every asset sorted by identifier.
func (idx *Index) Assets() []*Asset {
	var out []*Asset
	for _, id := range idx.sortedIDs() {
		if a, ok := idx.items[id].(*Asset); ok {
			out = append(out, a)
		}
	}
	return out
}

func (idx *Index) sortedIDs() []string {
	ids := append([]string(nil), idx.keys...)
	sort.Strings(ids)
	return ids
}
