package content

import (
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

const markdownExt = ".md"

// IsMarkdown reports whether p names a Markdown document.
func IsMarkdown(p string) bool {
	return path.Ext(p) == markdownExt
}

// IDFromPath derives an identifier from a slash separated source path.
// Markdown documents lose their extension; everything else keeps it.
func IDFromPath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if IsMarkdown(p) {
		return strings.TrimSuffix(p, markdownExt)
	}
	return p
}

// PermalinkFromPath derives the output path for a source path. Every
// segment is slugified; asset extensions are preserved.
func PermalinkFromPath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	ext := path.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	if ext == markdownExt {
		ext = ""
	}

	segments := strings.Split(stem, "/")
	for i, segment := range segments {
		segments[i] = Slug(segment)
	}
	return "/" + strings.Join(segments, "/") + ext
}

// URL renders a permalink with exactly one leading slash. It is the form
// used both for rewritten links and for graph node urls.
func URL(permalink string) string {
	return "/" + strings.TrimLeft(permalink, "/")
}

// Slug normalises a single path segment or tag for use in a URL. Values
// the slug rules reject are returned unchanged.
func Slug(segment string) string {
	s, err := slug.Normalize(segment)
	if err != nil || s == "" {
		return segment
	}
	return s
}
