package content

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"intro.md":              {Data: []byte("See [[today]].")},
		"notes/today.md":        {Data: []byte("Hello")},
		"img/diagram.png":       {Data: []byte("png")},
		".obsidian/config.json": {Data: []byte("{}")},
		"notes/.draft.md":       {Data: []byte("hidden")},
		"notes/nested/.keep":    {Data: []byte("")},
	}

	idx, err := NewReader(fsys).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	intro, ok := idx.Article("intro")
	require.True(t, ok)
	assert.Equal(t, "/intro", intro.Permalink)
	assert.Equal(t, "intro.md", intro.Source)
	assert.Equal(t, "See [[today]].", intro.Raw)
	assert.Nil(t, intro.Meta)
	assert.Empty(t, intro.Content)

	today, ok := idx.Article("today")
	require.True(t, ok)
	assert.Equal(t, "notes/today", today.ID)

	img, ok := idx.Asset("diagram.png")
	require.True(t, ok)
	assert.Equal(t, "img/diagram.png", img.ID)
	assert.Equal(t, "/img/diagram.png", img.Permalink)

	_, ok = idx.Get(".obsidian/config.json")
	assert.False(t, ok)
	_, ok = idx.Get("notes/.draft")
	assert.False(t, ok)
}

func TestReaderOpen(t *testing.T) {
	fsys := fstest.MapFS{"img/diagram.png": {Data: []byte("png-bytes")}}
	r := NewReader(fsys)
	idx, err := r.Load()
	require.NoError(t, err)

	item, ok := idx.Get("img/diagram.png")
	require.True(t, ok)
	rc, err := r.Open(item)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}
