package markup

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/muurk/xamlrt/internal/uitree"
)

// yamlElement is one element of the YAML form. Attributes are kept as a raw
// node so their document order survives decoding.
type yamlElement struct {
	Element    string        `yaml:"element"`
	Attributes yaml.Node     `yaml:"attributes"`
	Text       string        `yaml:"text"`
	Children   []yamlElement `yaml:"children"`
}

// ReadYAML parses a YAML document and assembles its tree.
func ReadYAML(r io.Reader) (*uitree.Tree, error) {
	var root yamlElement
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ReadError{Type: ErrTypeFormat, Err: errors.New("empty document")}
		}
		var te *yaml.TypeError
		if errors.As(err, &te) {
			return nil, &ReadError{Type: ErrTypeFormat, Err: err}
		}
		return nil, &ReadError{Type: ErrTypeSyntax, Err: err}
	}

	a := uitree.NewAssembler()
	if err := feedYAML(&root, a, "/"); err != nil {
		return nil, err
	}
	return a.Finish()
}

func feedYAML(el *yamlElement, a *uitree.Assembler, path string) error {
	if el.Element == "" {
		return &ReadError{Type: ErrTypeFormat, Err: fmt.Errorf("element at %s has no name", path)}
	}
	path += el.Element

	attrs, err := yamlAttrs(&el.Attributes, path)
	if err != nil {
		return err
	}
	if err := a.StartElement(el.Element, attrs); err != nil {
		return err
	}
	a.Characters(el.Text)
	for i := range el.Children {
		if err := feedYAML(&el.Children[i], a, fmt.Sprintf("%s/%d:", path, i)); err != nil {
			return err
		}
	}
	return a.EndElement(el.Element)
}

func yamlAttrs(n *yaml.Node, path string) ([]uitree.Attr, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, &ReadError{Type: ErrTypeFormat, Err: fmt.Errorf("attributes of %s must be a mapping", path)}
	}

	out := make([]uitree.Attr, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, &ReadError{Type: ErrTypeFormat,
				Err: fmt.Errorf("attribute %q of %s must be a scalar", k.Value, path)}
		}
		out = append(out, uitree.Attr{Name: k.Value, Value: v.Value})
	}
	return out, nil
}
