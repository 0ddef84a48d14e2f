package model

import "github.com/Bitlatte/spade/internal/content"

// SiteData holds site-wide values available to every template.
type SiteData struct {
	Title    string
	GraphURL string
	Articles []*content.Article
	Tags     map[string][]string
}
