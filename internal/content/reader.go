package content

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Reader loads content items from a file tree.
type Reader struct {
	fsys fs.FS
}

// NewReader returns a Reader rooted at fsys.
func NewReader(fsys fs.FS) *Reader {
	return &Reader{fsys: fsys}
}

// ReadAll walks the tree and returns one item per regular file. Hidden
// files and directories are skipped. Markdown files become articles with
// their body loaded; everything else becomes an asset.
func (r *Reader) ReadAll() ([]Item, error) {
	var items []Item
	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", p, err)
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if !IsMarkdown(p) {
			items = append(items, &Asset{
				ID:        IDFromPath(p),
				Permalink: PermalinkFromPath(p),
				Source:    p,
			})
			return nil
		}

		raw, err := fs.ReadFile(r.fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}
		items = append(items, &Article{
			ID:        IDFromPath(p),
			Permalink: PermalinkFromPath(p),
			Source:    p,
			Raw:       strings.ToValidUTF8(string(raw), "�"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Load reads the tree and builds an index from it.
func (r *Reader) Load() (*Index, error) {
	items, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return NewIndex(items...)
}

// Open returns a reader for an item's source bytes.
func (r *Reader) Open(item Item) (io.ReadCloser, error) {
	f, err := r.fsys.Open(item.SourcePath())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", item.SourcePath(), err)
	}
	return f, nil
}
