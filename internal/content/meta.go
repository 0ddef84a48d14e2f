package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// delimited recognises a front matter block without decoding it.
var delimited = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", discard),
	frontmatter.NewFormat("+++", "+++", discard),
}

func discard([]byte, interface{}) error { return nil }

// ParseMetadata splits raw into front matter and body. Documents without
// front matter yield empty metadata and the unchanged body. A malformed
// block yields nil metadata, the body that follows the block and the parse
// error so the caller can report it and carry on.
func ParseMetadata(raw string) (*Metadata, string, error) {
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader([]byte(raw)), &meta)
	if err == nil {
		return &meta, string(body), nil
	}
	parseErr := fmt.Errorf("parse front matter: %w", err)

	body, err = frontmatter.Parse(bytes.NewReader([]byte(raw)), nil, delimited...)
	if err != nil {
		return nil, raw, parseErr
	}
	return nil, string(body), parseErr
}
