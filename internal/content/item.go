package content

import (
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind distinguishes the variants of Item.
type Kind int

const (
	KindArticle Kind = iota
	KindAsset
)

func (k Kind) String() string {
	switch k {
	case KindArticle:
		return "article"
	case KindAsset:
		return "asset"
	default:
		return "unknown"
	}
}

// Item is a single piece of source content keyed by its identifier.
type Item interface {
	Kind() Kind
	Identifier() string
	Link() string
	SourcePath() string
}

// Metadata is the front matter of an article.
type Metadata struct {
	Title     string    `yaml:"title"`
	Tags      []string  `yaml:"tags"`
	Template  string    `yaml:"template"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Article is a Markdown document. Raw holds the body as read from the
// source; Content is filled in by the render pipeline.
type Article struct {
	ID        string
	Permalink string
	Source    string
	Raw       string
	Meta      *Metadata
	Content   string
}

func (a *Article) Kind() Kind         { return KindArticle }
func (a *Article) Identifier() string { return a.ID }
func (a *Article) Link() string       { return a.Permalink }
func (a *Article) SourcePath() string { return a.Source }

// Clone returns a shallow copy whose Meta is copied as well.
func (a *Article) Clone() *Article {
	c := *a
	if a.Meta != nil {
		m := *a.Meta
		m.Tags = append([]string(nil), a.Meta.Tags...)
		c.Meta = &m
	}
	return &c
}

// Title prefers the front matter title and falls back to the file name
// with dashes and underscores turned into spaces.
func (a *Article) Title() string {
	if a.Meta != nil && strings.TrimSpace(a.Meta.Title) != "" {
		return a.Meta.Title
	}
	base := path.Base(a.ID)
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}

// Tags returns the front matter tags, or nil.
func (a *Article) Tags() []string {
	if a.Meta == nil {
		return nil
	}
	return a.Meta.Tags
}

// Asset is any non-Markdown file. It is copied verbatim.
type Asset struct {
	ID        string
	Permalink string
	Source    string
}

func (a *Asset) Kind() Kind         { return KindAsset }
func (a *Asset) Identifier() string { return a.ID }
func (a *Asset) Link() string       { return a.Permalink }
func (a *Asset) SourcePath() string { return a.Source }
