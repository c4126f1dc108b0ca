package markup

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/muurk/xamlrt/internal/uitree"
)

const scenarioXML = `<Window Title="Demo">
  <Label Text="Hi"/>
  <Button Content="Go" Click="OnGo"/>
</Window>`

const scenarioYAML = `element: Window
attributes: {Title: Demo}
children:
  - element: Label
    attributes: {Text: Hi}
  - element: Button
    attributes: {Content: Go, Click: OnGo}
`

// recorder is a registry that records the methods it is asked to call.
type recorder struct {
	calls []string
	tree  *uitree.Tree
}

func (r *recorder) CallMethod(name string) error { r.calls = append(r.calls, name); return nil }
func (r *recorder) Tree() *uitree.Tree           { return r.tree }
func (r *recorder) SetTree(t *uitree.Tree)       { r.tree = t }

// snapshot flattens a tree into comparable rows.
func snapshot(t *testing.T, tree *uitree.Tree) []string {
	t.Helper()
	var rows []string
	for _, n := range tree.Nodes() {
		row := string(n.ID()) + " " + n.Kind().String() + " " + n.ElementName()
		if p, ok := n.Parent(); ok {
			row += " <" + string(p.ID())
		}
		for _, a := range n.Attributes() {
			row += " " + a.Name + "=" + a.Value
		}
		rows = append(rows, row)
	}
	return rows
}

func TestReadScenarioEndToEnd(t *testing.T) {
	for _, tc := range []struct {
		name   string
		format Format
		src    string
	}{
		{"xml", FormatXML, scenarioXML},
		{"yaml", FormatYAML, scenarioYAML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := Parse([]byte(tc.src), tc.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			rec := &recorder{}
			d, err := tree.HandleEvent("node-3", uitree.NewEvent("Click", rec))
			if err != nil {
				t.Fatalf("HandleEvent() error = %v", err)
			}
			if !reflect.DeepEqual(rec.calls, []string{"OnGo"}) {
				t.Errorf("calls = %v, want [OnGo]", rec.calls)
			}
			if want := []uitree.NodeID{"node-3", "node-1"}; !reflect.DeepEqual(d.Visited, want) {
				t.Errorf("Visited = %v, want %v", d.Visited, want)
			}
		})
	}
}

func TestXMLAndYAMLProduceSameTree(t *testing.T) {
	fromXML, err := Load(filepath.Join("testdata", "form.xaml"))
	if err != nil {
		t.Fatalf("Load(xaml) error = %v", err)
	}
	fromYAML, err := Load(filepath.Join("testdata", "form.yaml"))
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}

	x, y := snapshot(t, fromXML), snapshot(t, fromYAML)
	if !reflect.DeepEqual(x, y) {
		t.Errorf("trees differ\nxml:\n%s\nyaml:\n%s", strings.Join(x, "\n"), strings.Join(y, "\n"))
	}
	if fromXML.Describe() != fromYAML.Describe() {
		t.Errorf("Describe() differs\nxml:\n%s\nyaml:\n%s", fromXML.Describe(), fromYAML.Describe())
	}
}

func TestXMLNamespacesDropped(t *testing.T) {
	tree, err := Load(filepath.Join("testdata", "form.xaml"))
	if err != nil {
		t.Fatal(err)
	}
	root, _ := tree.Root()
	for _, a := range root.Attributes() {
		if strings.Contains(a.Name, "xmlns") {
			t.Errorf("namespace declaration kept: %s", a.Name)
		}
	}
	label, ok := tree.FindByID("node-10")
	if !ok || label.Kind() != uitree.KindLabel {
		t.Fatalf("node-10 = %v, want Label", label)
	}
	if got, _ := label.Attribute("Label.Name"); got != "user" {
		t.Errorf("x:Name should arrive as Label.Name, got %q", got)
	}
	if got := (uitree.Label{Node: label}).Text(); got != "nobody" {
		t.Errorf("label text = %q, want nobody", got)
	}
}

func TestXMLSplitContent(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"comment between runs", `<Label>A<!--x-->B</Label>`, "AB"},
		{"cdata section", `<Label><![CDATA[x<y]]> z</Label>`, "x<y z"},
		{"text around a child", `<Label>left <Unknown/>right</Label>`, "left right"},
		{"single run", `<Label> plain </Label>`, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.doc), FormatXML)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			root, _ := tree.Root()
			if got := (uitree.Label{Node: root}).Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadXMLErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		readType ErrorType
		asmType  uitree.ErrorType
		assembly bool
	}{
		{name: "malformed", src: `<Window><Label></Window>`, readType: ErrTypeSyntax},
		{name: "truncated", src: `<Window><Label/>`, readType: ErrTypeSyntax},
		{name: "empty", src: `  `, asmType: uitree.ErrTypeEmptyDocument, assembly: true},
		{name: "two roots", src: `<Window/><Window/>`, asmType: uitree.ErrTypeMultipleRoots, assembly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadXML(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("ReadXML() expected error")
			}
			if tt.assembly {
				if !uitree.IsAssemblyError(err, tt.asmType) {
					t.Errorf("error = %v, want assembly %v", err, tt.asmType)
				}
				return
			}
			if !IsReadError(err, tt.readType) {
				t.Errorf("error = %v, want read %v", err, tt.readType)
			}
		})
	}
}

func TestReadYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ErrorType
	}{
		{"syntax", "element: [Window", ErrTypeSyntax},
		{"empty", "", ErrTypeFormat},
		{"missing element", "attributes: {Title: x}\n", ErrTypeFormat},
		{"unknown field", "element: Window\ncolour: red\n", ErrTypeFormat},
		{"attributes not a mapping", "element: Window\nattributes: [a, b]\n", ErrTypeFormat},
		{"nested attribute value", "element: Window\nattributes:\n  Title: {a: b}\n", ErrTypeFormat},
		{"nameless child", "element: Window\nchildren:\n  - text: hi\n", ErrTypeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(tt.src))
			if !IsReadError(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"ui.xaml", FormatXML, false},
		{"UI.XML", FormatXML, false},
		{"ui.yaml", FormatYAML, false},
		{"ui.yml", FormatYAML, false},
		{"ui.json", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("FormatForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
		if tt.wantErr && !IsReadError(err, ErrTypeFormat) {
			t.Errorf("FormatForPath(%q) error = %v, want format error", tt.path, err)
		}
	}
}

func TestLoadErrorsCarryPath(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.xaml")
	_, err := Load(missing)
	var re *ReadError
	if !errors.As(err, &re) || re.Type != ErrTypeIO || re.Path != missing {
		t.Errorf("Load(missing) error = %v, want IO error with path", err)
	}

	bad := filepath.Join(dir, "bad.xaml")
	if err := os.WriteFile(bad, []byte("<Window>"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !errors.As(err, &re) || re.Path != bad {
		t.Errorf("Load(bad) error = %v, want path %s", err, bad)
	}

	unbalanced := filepath.Join(dir, "two.xaml")
	if err := os.WriteFile(unbalanced, []byte("<A/><B/>"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = Load(unbalanced)
	if !uitree.IsAssemblyError(err, uitree.ErrTypeMultipleRoots) || !strings.Contains(err.Error(), unbalanced) {
		t.Errorf("Load(two roots) error = %v", err)
	}
}
