package uitree

import (
	"fmt"
	"strings"

	"github.com/muurk/xamlrt/internal/logging"
)

// TokenKind identifies a parser event.
type TokenKind int

const (
	TokenStart TokenKind = iota
	TokenEnd
	TokenText
)

// Token is one parser event: a start element with its raw attributes, an end
// element, or character data.
type Token struct {
	Kind  TokenKind
	Name  string
	Attrs []Attr
	Text  string
}

// Assembler builds a Tree from a stream of parser events. Ids are allocated
// sequentially here, never by the nodes.
//
// The first error is sticky: later calls return it again and Finish never
// returns a partial tree.
type Assembler struct {
	tree       *Tree
	stack      []*Node
	next       int
	rootClosed bool
	err        error
}

// NewAssembler returns an assembler for one document.
func NewAssembler() *Assembler {
	return &Assembler{tree: NewTree()}
}

func (a *Assembler) fail(t ErrorType, element, msg string) error {
	a.err = &AssemblyError{Type: t, Message: msg, Element: element, Depth: len(a.stack)}
	return a.err
}

// StartElement creates the node for name, attaches it to the element
// currently open and makes it the open element.
func (a *Assembler) StartElement(name string, attrs []Attr) error {
	if a.err != nil {
		return a.err
	}
	if a.rootClosed {
		return a.fail(ErrTypeMultipleRoots, name, "element after the root element was closed")
	}

	logging.LogElement("+", name, len(a.stack))

	a.next++
	n, err := a.tree.NewNode(NodeID(fmt.Sprintf("node-%d", a.next)), name, attrs)
	if err != nil {
		a.err = err
		return err
	}

	if len(a.stack) > 0 {
		a.stack[len(a.stack)-1].AddChild(n)
	} else {
		a.tree.SetRoot(n)
	}
	a.stack = append(a.stack, n)
	return nil
}

// EndElement closes the open element. The root stays on the stack.
func (a *Assembler) EndElement(name string) error {
	if a.err != nil {
		return a.err
	}
	if len(a.stack) == 0 || a.rootClosed {
		return a.fail(ErrTypeUnbalanced, name, "end element without an open element")
	}

	top := a.stack[len(a.stack)-1]
	if top.ElementName() != name {
		return a.fail(ErrTypeMismatchedEnd, name,
			fmt.Sprintf("end element does not close open element %q", top.ElementName()))
	}

	logging.LogElement("-", name, len(a.stack)-1)

	if len(a.stack) > 1 {
		a.stack = a.stack[:len(a.stack)-1]
	} else {
		a.rootClosed = true
	}
	return nil
}

// Characters folds text into the open element. Whitespace-only runs
// between elements are dropped; other text is trimmed.
func (a *Assembler) Characters(text string) {
	if a.err != nil || len(a.stack) == 0 || a.rootClosed {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	a.stack[len(a.stack)-1].SetContent(text)
}

// Feed applies one token.
func (a *Assembler) Feed(tok Token) error {
	switch tok.Kind {
	case TokenStart:
		return a.StartElement(tok.Name, tok.Attrs)
	case TokenEnd:
		return a.EndElement(tok.Name)
	case TokenText:
		a.Characters(tok.Text)
	}
	return a.err
}

// Finish returns the tree once input is exhausted. Exactly one node, the
// closed root, must remain on the stack.
func (a *Assembler) Finish() (*Tree, error) {
	if a.err != nil {
		return nil, a.err
	}
	switch {
	case len(a.stack) == 0:
		return nil, a.fail(ErrTypeEmptyDocument, "", "document contains no elements")
	case len(a.stack) > 1 || !a.rootClosed:
		open := a.stack[len(a.stack)-1].ElementName()
		return nil, a.fail(ErrTypeUnterminated, open,
			fmt.Sprintf("%d element(s) still open at end of input", len(a.stack)))
	}
	return a.tree, nil
}

// Assemble builds a tree from a complete token sequence.
func Assemble(tokens []Token) (*Tree, error) {
	a := NewAssembler()
	for _, tok := range tokens {
		if err := a.Feed(tok); err != nil {
			return nil, err
		}
	}
	return a.Finish()
}
