package model

import (
	"html/template"

	"github.com/Bitlatte/spade/internal/content"
)

// PageData is the context an article template is executed with.
type PageData struct {
	ID        string
	Title     string
	Permalink string
	Meta      *content.Metadata
	Content   template.HTML
	Tags      []string
	// Backlinks maps each article linking here to its url.
	Backlinks map[string]string
	Site      *SiteData
}

// TagData is the context of a tag listing page.
type TagData struct {
	Tag string
	// Links maps each tagged article to its url.
	Links map[string]string
	Site  *SiteData
}
