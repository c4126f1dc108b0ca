package markup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/xamlrt/internal/logging"
	"github.com/muurk/xamlrt/internal/uitree"
)

// Format is a markup source form.
type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "xml"
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xaml", ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, &ReadError{Type: ErrTypeFormat, Path: path,
			Err: fmt.Errorf("unsupported extension %q (expected .xaml, .xml, .yaml or .yml)", filepath.Ext(path))}
	}
}

// Read assembles a tree from r in the given format.
func Read(r io.Reader, f Format) (*uitree.Tree, error) {
	if f == FormatYAML {
		return ReadYAML(r)
	}
	return ReadXML(r)
}

// Parse assembles a tree from an in-memory document.
func Parse(data []byte, f Format) (*uitree.Tree, error) {
	return Read(bytes.NewReader(data), f)
}

// Load reads the document at path, choosing the format by extension.
func Load(path string) (*uitree.Tree, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Type: ErrTypeIO, Path: path, Err: err}
	}
	defer file.Close()

	tree, err := Read(file, f)
	if err != nil {
		if re, ok := err.(*ReadError); ok && re.Path == "" {
			re.Path = path
			return nil, re
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Debug("Markup loaded",
		zap.String("path", path),
		zap.String("format", f.String()),
		zap.Int("nodes", tree.Len()),
	)
	return tree, nil
}
