package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/spade/internal/content"
)

// output writes generated files below a destination directory.
type output struct {
	dir string
}

func newOutput(dir string) *output {
	return &output{dir: dir}
}

// reset empties the destination directory.
func (o *output) reset() error {
	if err := os.RemoveAll(o.dir); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", o.dir, err)
	}
	if err := os.MkdirAll(o.dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", o.dir, err)
	}
	return nil
}

func (o *output) path(permalink string) string {
	return filepath.Join(o.dir, filepath.FromSlash(strings.TrimLeft(permalink, "/")))
}

func (o *output) writeFile(permalink string, data []byte) error {
	dst := o.path(permalink)
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", dst, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", dst, err)
	}
	return nil
}

func (o *output) create(permalink string) (*os.File, error) {
	dst := o.path(permalink)
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create destination directory %s: %w", filepath.Dir(dst), err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}
	return f, nil
}

// copyItem copies an asset's source bytes to its permalink.
func (o *output) copyItem(r *content.Reader, a *content.Asset) error {
	src, err := r.Open(a)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := o.create(a.Permalink)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", a.Source, dst.Name(), err)
	}
	return nil
}

// copyTree copies every file of fsys below prefix in the destination.
func (o *output) copyTree(fsys fs.FS, prefix string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		src, err := fsys.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open source file %s: %w", p, err)
		}
		defer src.Close()

		dst, err := o.create(prefix + "/" + p)
		if err != nil {
			return err
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("failed to copy data from %s to %s: %w", p, dst.Name(), err)
		}
		return nil
	})
}
