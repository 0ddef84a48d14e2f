// Package site runs a full generation pass: it reads the source tree,
// resolves the link graph, renders every article through the theme and
// writes the result to the destination directory.
//
// Each call to Run starts from nothing. No state survives between runs, so
// a watch-triggered rebuild behaves exactly like the first build.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Bitlatte/spade/internal/config"
	"github.com/Bitlatte/spade/internal/content"
	"github.com/Bitlatte/spade/internal/graph"
	"github.com/Bitlatte/spade/internal/links"
	"github.com/Bitlatte/spade/internal/metrics"
	"github.com/Bitlatte/spade/internal/model"
	"github.com/Bitlatte/spade/internal/render"
)

// Generator builds a site from a source tree and a theme.
type Generator struct {
	cfg    config.Config
	source fs.FS
	theme  fs.FS
	log    *zap.Logger
}

// New returns a Generator reading the directories named in cfg.
func New(cfg config.Config, logger *zap.Logger) *Generator {
	return NewWithFS(cfg, os.DirFS(cfg.Source), os.DirFS(cfg.Theme), logger)
}

// NewWithFS returns a Generator over arbitrary file systems. Output is
// always written to cfg.Destination on disk.
func NewWithFS(cfg config.Config, source, theme fs.FS, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{cfg: cfg, source: source, theme: theme, log: logger}
}

// Result summarises a generation run.
type Result struct {
	Articles   int
	Assets     int
	Tags       int
	Edges      int
	Unresolved int
	Duration   time.Duration
}

// page is a fully rendered output file waiting to be written.
type page struct {
	permalink string
	body      []byte
}

// Run performs one generation pass. Everything is rendered in memory
// before the destination is touched, so a template or markdown failure
// leaves the previous output in place.
func (g *Generator) Run() (Result, error) {
	start := time.Now()
	log := g.log.With(zap.String("run_id", uuid.NewString()))
	log.Info("generating site",
		zap.String("source", g.cfg.Source),
		zap.String("destination", g.cfg.Destination),
		zap.String("theme", g.cfg.Theme))

	res, err := g.run(log)
	res.Duration = time.Since(start)
	metrics.Observe(metrics.Run{
		Duration:   res.Duration,
		Articles:   res.Articles,
		Assets:     res.Assets,
		Edges:      res.Edges,
		Unresolved: res.Unresolved,
		Err:        err,
	})
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return res, err
	}

	log.Info("site generated",
		zap.Int("articles", res.Articles),
		zap.Int("assets", res.Assets),
		zap.Int("tags", res.Tags),
		zap.Int("edges", res.Edges),
		zap.Int("unresolved_links", res.Unresolved),
		zap.Int64("elapsed_ms", res.Duration.Milliseconds()))
	return res, nil
}

func (g *Generator) run(log *zap.Logger) (Result, error) {
	var res Result

	if err := g.cfg.Validate(); err != nil {
		return res, err
	}

	theme, err := render.LoadTheme(g.theme)
	if err != nil {
		return res, fmt.Errorf("load theme: %w", err)
	}

	reader := content.NewReader(g.source)
	idx, err := reader.Load()
	if err != nil {
		return res, fmt.Errorf("read source: %w", err)
	}
	articles := idx.Articles()
	assets := idx.Assets()
	res.Articles, res.Assets = len(articles), len(assets)

	refs := graph.BuildReferences(idx)
	log.Debug("content indexed",
		zap.Int("items", idx.Len()),
		zap.Int("references", refs.Len()))
	exported := graph.Export(idx, refs, graph.ExportOptions{DedupeEdges: g.cfg.Graph.DedupeEdges})
	res.Edges = len(exported.Edges)
	graphJSON, err := exported.JSON()
	if err != nil {
		return res, err
	}

	site := &model.SiteData{
		Title:    g.cfg.SiteTitle,
		GraphURL: content.URL(g.cfg.Graph.Path),
		Articles: articles,
		Tags:     make(map[string][]string),
	}

	md := render.NewMarkdown(render.MarkdownOptions{
		HardWraps: g.cfg.Markdown.HardWraps,
		Unsafe:    g.cfg.Markdown.Unsafe,
	})

	prepared := make([]*content.Article, 0, len(articles))
	for _, a := range articles {
		for _, l := range links.Unresolved(idx, a.Raw) {
			res.Unresolved++
			log.Debug("unresolved wikilink",
				zap.String("article", a.ID),
				zap.String("link", l.Text()),
				zap.Stringer("form", l.Form))
		}

		resolved := links.ResolveArticle(idx, a)
		meta, body, err := content.ParseMetadata(resolved.Raw)
		if err != nil {
			log.Warn("could not parse front matter, treating as pure markdown",
				zap.String("article", a.ID), zap.Error(err))
		}
		resolved.Meta = meta

		html, err := md.Convert(body)
		if err != nil {
			return res, fmt.Errorf("article '%s': %w", a.ID, err)
		}
		resolved.Content = html
		prepared = append(prepared, resolved)

		for _, tag := range resolved.Tags() {
			site.Tags[tag] = append(site.Tags[tag], resolved.ID)
		}
	}
	res.Tags = len(site.Tags)

	var pages []page
	for _, a := range prepared {
		data := model.PageData{
			ID:        a.ID,
			Title:     a.Title(),
			Permalink: content.URL(a.Permalink),
			Meta:      a.Meta,
			Content:   template.HTML(a.Content),
			Tags:      a.Tags(),
			Backlinks: graph.Backlinks(idx, refs, a.ID),
			Site:      site,
		}
		var requested string
		if a.Meta != nil {
			requested = a.Meta.Template
		}
		name := theme.ArticleTemplate(requested)

		var buf bytes.Buffer
		if err := theme.Execute(&buf, name, data); err != nil {
			return res, fmt.Errorf("article '%s': %w", a.ID, err)
		}
		pages = append(pages, page{permalink: path.Join(a.Permalink, "index.html"), body: buf.Bytes()})
	}

	tagPages, err := g.renderTags(log, theme, idx, site)
	if err != nil {
		return res, err
	}
	pages = append(pages, tagPages...)
	pages = append(pages, page{permalink: g.cfg.Graph.Path, body: graphJSON})

	out := newOutput(g.cfg.Destination)
	if err := out.reset(); err != nil {
		return res, err
	}
	for _, p := range pages {
		if err := out.writeFile(p.permalink, p.body); err != nil {
			return res, err
		}
	}
	for _, a := range assets {
		if err := out.copyItem(reader, a); err != nil {
			return res, err
		}
	}
	if themeAssets := theme.Assets(); themeAssets != nil {
		if err := out.copyTree(themeAssets, "assets"); err != nil {
			return res, fmt.Errorf("failed to copy theme assets: %w", err)
		}
	}
	return res, nil
}

func (g *Generator) renderTags(log *zap.Logger, theme *render.Theme, idx *content.Index, site *model.SiteData) ([]page, error) {
	if len(site.Tags) == 0 {
		return nil, nil
	}
	name := theme.Manifest().TagTemplate
	if !theme.Has(name) {
		log.Warn("tag layout not found, skipping tag pages", zap.String("template", name))
		return nil, nil
	}

	tags := make([]string, 0, len(site.Tags))
	for tag := range site.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	// Tags sharing a slug share a page, named after the first of them.
	var slugs []string
	bySlug := make(map[string]*model.TagData)
	for _, tag := range tags {
		slug := content.Slug(tag)
		data, ok := bySlug[slug]
		if ok {
			log.Warn("tags share a page, merging",
				zap.String("tag", tag),
				zap.String("into", data.Tag),
				zap.String("slug", slug))
		} else {
			data = &model.TagData{Tag: tag, Links: make(map[string]string), Site: site}
			bySlug[slug] = data
			slugs = append(slugs, slug)
		}
		for _, id := range site.Tags[tag] {
			if a, ok := idx.Article(id); ok {
				data.Links[a.ID] = content.URL(a.Permalink)
			}
		}
	}

	pages := make([]page, 0, len(slugs))
	for _, slug := range slugs {
		data := bySlug[slug]
		var buf bytes.Buffer
		if err := theme.Execute(&buf, name, data); err != nil {
			return nil, fmt.Errorf("tag '%s': %w", data.Tag, err)
		}
		pages = append(pages, page{
			permalink: path.Join("tags", slug, "index.html"),
			body:      buf.Bytes(),
		})
	}
	return pages, nil
}
