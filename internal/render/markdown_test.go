package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownConvert(t *testing.T) {
	md := NewMarkdown(MarkdownOptions{Unsafe: true})

	html, err := md.Convert("# Heading\n\nSee [intro](/intro) and ![Image](/assets/d.png)\n\n- [x] done\n")
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 id="heading">Heading</h1>`)
	assert.Contains(t, html, `<a href="/intro">intro</a>`)
	assert.Contains(t, html, `<img src="/assets/d.png" alt="Image">`)
	assert.Contains(t, html, `checked`)
}

func TestMarkdownRawHTML(t *testing.T) {
	src := "<div class=\"note\">hi</div>\n"

	html, err := NewMarkdown(MarkdownOptions{Unsafe: true}).Convert(src)
	require.NoError(t, err)
	assert.Contains(t, html, `<div class="note">hi</div>`)

	html, err = NewMarkdown(MarkdownOptions{}).Convert(src)
	require.NoError(t, err)
	assert.NotContains(t, html, `<div class="note">`)
}

func TestMarkdownLeavesUnresolvedWikilinks(t *testing.T) {
	html, err := NewMarkdown(MarkdownOptions{}).Convert("a [[missing]] link")
	require.NoError(t, err)
	assert.Contains(t, html, "[[missing]]")
}
