// Package graph builds the link graph between articles: the forward
// reference map, the backlinks derived from it and the node/edge export
// consumed by the theme's graph view.
//
// Everything here is computed once per generation from an immutable
// content.Index and is itself read-only once built.
package graph

import (
	"sort"

	"github.com/Bitlatte/spade/internal/content"
	"github.com/Bitlatte/spade/internal/links"
)

// ReferenceMap maps an article identifier to the identifiers it links to,
// in extraction order. Repeated links are kept.
type ReferenceMap struct {
	refs    map[string][]string
	sources []string
}

// BuildReferences extracts the outgoing links of every article in idx.
func BuildReferences(idx *content.Index) *ReferenceMap {
	articles := idx.Articles()
	rm := &ReferenceMap{
		refs:    make(map[string][]string, len(articles)),
		sources: make([]string, 0, len(articles)),
	}
	for _, a := range articles {
		rm.refs[a.ID] = links.Extract(idx, a.Raw)
		rm.sources = append(rm.sources, a.ID)
	}
	return rm
}

// newReferenceMap builds a map from precomputed references.
func newReferenceMap(refs map[string][]string) *ReferenceMap {
	rm := &ReferenceMap{
		refs:    make(map[string][]string, len(refs)),
		sources: make([]string, 0, len(refs)),
	}
	for source, targets := range refs {
		rm.refs[source] = append([]string(nil), targets...)
		rm.sources = append(rm.sources, source)
	}
	sort.Strings(rm.sources)
	return rm
}

// Sources returns the article identifiers in the map, sorted.
func (rm *ReferenceMap) Sources() []string {
	return append([]string(nil), rm.sources...)
}

// Targets returns the outgoing references of source.
func (rm *ReferenceMap) Targets(source string) []string {
	return append([]string(nil), rm.refs[source]...)
}

// Len reports the total number of references, duplicates included.
func (rm *ReferenceMap) Len() int {
	n := 0
	for _, targets := range rm.refs {
		n += len(targets)
	}
	return n
}

// Inbound returns the articles that reference id, each once, sorted.
func (rm *ReferenceMap) Inbound(id string) []string {
	var inbound []string
	for _, source := range rm.sources {
		for _, target := range rm.refs[source] {
			if target == id {
				inbound = append(inbound, source)
				break
			}
		}
	}
	return inbound
}

// Backlinks maps every article referencing id to that article's url.
func Backlinks(idx *content.Index, rm *ReferenceMap, id string) map[string]string {
	out := make(map[string]string)
	for _, source := range rm.Inbound(id) {
		if item, ok := idx.Get(source); ok {
			out[source] = content.URL(item.Link())
		}
	}
	return out
}
