package markup

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/muurk/xamlrt/internal/uitree"
)

// ReadXML parses an XML document and assembles its tree.
func ReadXML(r io.Reader) (*uitree.Tree, error) {
	a := uitree.NewAssembler()
	if err := feedXML(r, a); err != nil {
		return nil, err
	}
	return a.Finish()
}

// feedXML streams tokens into a. Character data is collected per open
// element and handed over once when the element ends, so text split by
// comments, CDATA sections or child elements is kept whole.
func feedXML(r io.Reader, a *uitree.Assembler) error {
	dec := xml.NewDecoder(r)
	var text []*strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var syn *xml.SyntaxError
			if errors.As(err, &syn) {
				return &ReadError{Type: ErrTypeSyntax, Err: err}
			}
			return &ReadError{Type: ErrTypeIO, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := a.StartElement(t.Name.Local, xmlAttrs(t.Attr)); err != nil {
				return err
			}
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			if n := len(text); n > 0 {
				a.Characters(text[n-1].String())
				text = text[:n-1]
			}
			if err := a.EndElement(t.Name.Local); err != nil {
				return err
			}
		case xml.CharData:
			if n := len(text); n > 0 {
				text[n-1].Write(t)
			}
		}
	}
}

// xmlAttrs keeps attribute order and drops namespace declarations.
func xmlAttrs(in []xml.Attr) []uitree.Attr {
	out := make([]uitree.Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		out = append(out, uitree.Attr{Name: a.Name.Local, Value: a.Value})
	}
	return out
}
