// Package links recognises wikilinks in article bodies and resolves them
// against a content index.
//
// Three forms are understood:
//
//	![[target]]         image, resolves to any item
//	[[target|label]]    aliased link, resolves to an article
//	[[target]]          plain link, resolves to an article
//
// Results are always reported image links first, then aliased links, then
// plain links, each group in textual order.
package links

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Bitlatte/spade/internal/content"
)

// Form is the syntax a wikilink was written in.
type Form int

const (
	FormImage Form = iota
	FormAliased
	FormPlain
)

func (f Form) String() string {
	switch f {
	case FormImage:
		return "image"
	case FormAliased:
		return "aliased"
	case FormPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// Link is a single wikilink occurrence.
type Link struct {
	Form   Form
	Target string
	Label  string
	// Start and End delimit the whole link, brackets included, in bytes.
	Start int
	End   int
}

// Text returns the link as it was written.
func (l Link) Text() string {
	switch l.Form {
	case FormImage:
		return "![[" + l.Target + "]]"
	case FormAliased:
		return "[[" + l.Target + "|" + l.Label + "]]"
	default:
		return "[[" + l.Target + "]]"
	}
}

// token matches word characters (Unicode aware), whitespace, '/', '.', '-'
// and '_'.
const token = `[\p{L}\p{M}\p{N}\p{Pc}\s/.\-]+?`

var (
	anyLink     = regexp.MustCompile(`(!?)\[\[` + token + `(\|` + token + `)?\]\]`)
	imageLink   = regexp.MustCompile(`!\[\[(` + token + `)\]\]`)
	aliasedLink = regexp.MustCompile(`\[\[(` + token + `)\|(` + token + `)\]\]`)
	plainLink   = regexp.MustCompile(`\[\[(` + token + `)\]\]`)
)

type formSet [3]bool

// detect reports which forms occur in body so that absent forms are never
// scanned.
func detect(body string) formSet {
	var set formSet
	if !strings.Contains(body, "[[") {
		return set
	}
	for _, m := range anyLink.FindAllStringSubmatchIndex(body, -1) {
		switch {
		case m[3] > m[2]:
			set[FormImage] = true
		case m[4] >= 0:
			set[FormAliased] = true
		default:
			set[FormPlain] = true
		}
		if set[FormImage] && set[FormAliased] && set[FormPlain] {
			break
		}
	}
	return set
}

// Scan returns every wikilink in body: image links, then aliased links,
// then plain links.
func Scan(body string) []Link {
	set := detect(body)
	var out []Link
	if set[FormImage] {
		for _, m := range imageLink.FindAllStringSubmatchIndex(body, -1) {
			out = append(out, Link{
				Form:   FormImage,
				Target: body[m[2]:m[3]],
				Start:  m[0],
				End:    m[1],
			})
		}
	}
	if set[FormAliased] {
		for _, m := range aliasedLink.FindAllStringSubmatchIndex(body, -1) {
			if bang(body, m[0]) {
				continue
			}
			out = append(out, Link{
				Form:   FormAliased,
				Target: body[m[2]:m[3]],
				Label:  body[m[4]:m[5]],
				Start:  m[0],
				End:    m[1],
			})
		}
	}
	if set[FormPlain] {
		for _, m := range plainLink.FindAllStringSubmatchIndex(body, -1) {
			if bang(body, m[0]) {
				continue
			}
			out = append(out, Link{
				Form:   FormPlain,
				Target: body[m[2]:m[3]],
				Start:  m[0],
				End:    m[1],
			})
		}
	}
	return out
}

func bang(body string, start int) bool {
	return start > 0 && body[start-1] == '!'
}

// resolve looks a link's target up in idx. Image links accept any kind of
// item, the other forms only articles.
func resolve(idx *content.Index, l Link) (content.Item, bool) {
	if l.Form == FormImage {
		return idx.Resolve(l.Target)
	}
	return idx.Lookup(content.KindArticle, l.Target)
}

// Extract returns the identifiers of every item body links to, in scan
// order. Unresolved links are left out.
func Extract(idx *content.Index, body string) []string {
	var ids []string
	for _, l := range Scan(body) {
		if item, ok := resolve(idx, l); ok {
			ids = append(ids, item.Identifier())
		}
	}
	return ids
}

// Unresolved returns the links in body that do not resolve.
func Unresolved(idx *content.Index, body string) []Link {
	var out []Link
	for _, l := range Scan(body) {
		if _, ok := resolve(idx, l); !ok {
			out = append(out, l)
		}
	}
	return out
}

// Replace rewrites every resolvable wikilink in body as a Markdown link.
// Unresolved links are kept verbatim.
func Replace(idx *content.Index, body string) string {
	type edit struct {
		start, end int
		text       string
	}
	var edits []edit
	for _, l := range Scan(body) {
		item, ok := resolve(idx, l)
		if !ok {
			continue
		}
		url := content.URL(item.Link())
		var text string
		switch l.Form {
		case FormImage:
			text = "![Image](" + url + ")"
		case FormAliased:
			text = "[" + l.Label + "](" + url + ")"
		default:
			text = "[" + l.Target + "](" + url + ")"
		}
		edits = append(edits, edit{l.Start, l.End, text})
	}
	if len(edits) == 0 {
		return body
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })
	var b strings.Builder
	b.Grow(len(body))
	last := 0
	for _, e := range edits {
		b.WriteString(body[last:e.start])
		b.WriteString(e.text)
		last = e.end
	}
	b.WriteString(body[last:])
	return b.String()
}

// ResolveArticle returns a copy of a with its wikilinks rewritten. The
// original article is not modified.
func ResolveArticle(idx *content.Index, a *content.Article) *content.Article {
	out := a.Clone()
	out.Raw = Replace(idx, a.Raw)
	return out
}
