package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	raw := "---\ntitle: Tomatoes\ntags:\n- garden\n- food\ntemplate: main\ncreated_at: 2021-03-04T10:00:00Z\nunsupported_key:\n- with unsupported values\n---\n# Here comes the markdown!"

	meta, body, err := ParseMetadata(raw)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "Tomatoes", meta.Title)
	assert.Equal(t, []string{"garden", "food"}, meta.Tags)
	assert.Equal(t, "main", meta.Template)
	assert.Equal(t, time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC), meta.CreatedAt.UTC())
	assert.Equal(t, "# Here comes the markdown!", strings.TrimSpace(body))
}

func TestParseMetadataWithoutFrontMatter(t *testing.T) {
	meta, body, err := ParseMetadata("# Here comes the markdown!")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, Metadata{}, *meta)
	assert.Equal(t, "# Here comes the markdown!", strings.TrimSpace(body))
}

func TestParseMetadataMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"yaml", "---\ntitle: [unclosed\n---\nbody\n", "body\n"},
		{"yaml without trailing newline", "---\ntags: {a\n---\n# Heading", "# Heading"},
		{"toml", "+++\ntitle = \n+++\nbody\n", "body\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := ParseMetadata(tt.raw)
			require.Error(t, err)
			assert.Nil(t, meta)
			assert.Equal(t, tt.want, body)
			assert.NotContains(t, body, "---")
		})
	}
}

func TestArticleTitle(t *testing.T) {
	a := &Article{ID: "notes/growing-tomatoes"}
	assert.Equal(t, "Growing Tomatoes", a.Title())

	a.Meta = &Metadata{Title: "Tomatoes!"}
	assert.Equal(t, "Tomatoes!", a.Title())
}

func TestArticleCloneIsIndependent(t *testing.T) {
	a := &Article{ID: "a", Raw: "x", Meta: &Metadata{Tags: []string{"t"}}}
	c := a.Clone()
	c.Raw = "y"
	c.Meta.Tags[0] = "changed"

	assert.Equal(t, "x", a.Raw)
	assert.Equal(t, "t", a.Meta.Tags[0])
}
