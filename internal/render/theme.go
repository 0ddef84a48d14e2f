package render

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	templatesDir    = "templates"
	partialsDir     = "templates/partials"
	manifestFile    = "theme.yaml"
	defaultTemplate = "default.html"
	tagTemplate     = "tag.html"
)

// ErrTemplateNotFound is returned when a theme has no template by the
// requested name.
var ErrTemplateNotFound = errors.New("template not found")

// Manifest is the optional theme.yaml at the root of a theme.
type Manifest struct {
	Name            string `yaml:"name"`
	DefaultTemplate string `yaml:"defaultTemplate"`
	TagTemplate     string `yaml:"tagTemplate"`
}

// Theme is a parsed set of layouts plus the static assets that ship with
// them.
type Theme struct {
	fsys      fs.FS
	manifest  Manifest
	templates *template.Template
}

// LoadTheme reads the manifest and parses every .html file below
// templates/. Partials are parsed first so page templates can override
// their definitions.
func LoadTheme(fsys fs.FS) (*Theme, error) {
	manifest, err := readManifest(fsys)
	if err != nil {
		return nil, err
	}

	var partials, pages []string
	err = fs.WalkDir(fsys, templatesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		if strings.HasPrefix(p, partialsDir+"/") {
			partials = append(partials, p)
		} else {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find layout files in '%s': %w", templatesDir, err)
	}
	sort.Strings(partials)
	sort.Strings(pages)

	root := template.New("")
	for _, p := range append(partials, pages...) {
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read layout '%s': %w", p, err)
		}
		if _, err := root.New(path.Base(p)).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("failed to parse layout '%s': %w", p, err)
		}
	}

	return &Theme{fsys: fsys, manifest: manifest, templates: root}, nil
}

func readManifest(fsys fs.FS) (Manifest, error) {
	m := Manifest{
		DefaultTemplate: defaultTemplate,
		TagTemplate:     tagTemplate,
	}
	raw, err := fs.ReadFile(fsys, manifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("error reading theme manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("error unmarshalling theme manifest: %w", err)
	}
	if m.DefaultTemplate == "" {
		m.DefaultTemplate = defaultTemplate
	}
	if m.TagTemplate == "" {
		m.TagTemplate = tagTemplate
	}
	return m, nil
}

// Manifest returns the theme's manifest with defaults applied.
func (t *Theme) Manifest() Manifest { return t.manifest }

// Has reports whether the theme defines name.
func (t *Theme) Has(name string) bool {
	return t.templates.Lookup(name) != nil
}

// ArticleTemplate picks the layout for an article: the front matter
// template when the theme has it, the theme default otherwise.
func (t *Theme) ArticleTemplate(requested string) string {
	if requested != "" {
		name := requested
		if path.Ext(name) == "" {
			name += ".html"
		}
		if t.Has(name) {
			return name
		}
	}
	return t.manifest.DefaultTemplate
}

// Execute renders the named template into w.
func (t *Theme) Execute(w io.Writer, name string, data any) error {
	if !t.Has(name) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err := t.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to execute template '%s': %w", name, err)
	}
	return nil
}

// Assets returns the theme's static asset tree, or nil if it has none.
func (t *Theme) Assets() fs.FS {
	if _, err := fs.Stat(t.fsys, "assets"); err != nil {
		return nil
	}
	sub, err := fs.Sub(t.fsys, "assets")
	if err != nil {
		return nil
	}
	return sub
}
