package uitree

// Kind is the node variant discriminator. The set is closed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindWindow
	KindContentPage
	KindLabel
	KindTextBlock
	KindButton
	KindGrid
	KindGridColumnDefinitions
	KindGridRowDefinitions
	KindColumnDefinition
	KindRowDefinition
	KindStackLayout
)

// Kinds lists every variant, Unknown last.
var Kinds = []Kind{
	KindWindow,
	KindContentPage,
	KindLabel,
	KindTextBlock,
	KindButton,
	KindGrid,
	KindGridColumnDefinitions,
	KindGridRowDefinitions,
	KindColumnDefinition,
	KindRowDefinition,
	KindStackLayout,
	KindUnknown,
}

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "Window"
	case KindContentPage:
		return "ContentPage"
	case KindLabel:
		return "Label"
	case KindTextBlock:
		return "TextBlock"
	case KindButton:
		return "Button"
	case KindGrid:
		return "Grid"
	case KindGridColumnDefinitions:
		return "GridColumnDefinitions"
	case KindGridRowDefinitions:
		return "GridRowDefinitions"
	case KindColumnDefinition:
		return "ColumnDefinition"
	case KindRowDefinition:
		return "RowDefinition"
	case KindStackLayout:
		return "StackLayout"
	default:
		return "Unknown"
	}
}

// TypeName returns the prefix used to namespace this kind's properties.
// Unknown has none; its nodes namespace by their element name instead.
func (k Kind) TypeName() string {
	switch k {
	case KindGridColumnDefinitions:
		return "Grid.ColumnDefinitions"
	case KindGridRowDefinitions:
		return "Grid.RowDefinitions"
	case KindUnknown:
		return ""
	default:
		return k.String()
	}
}

// contentProperty names the property that inline markup text folds into.
// Kinds that ignore inline text return false.
func (k Kind) contentProperty() (string, bool) {
	switch k {
	case KindLabel, KindTextBlock:
		return "Text", true
	case KindButton:
		return "Content", true
	default:
		return "", false
	}
}

var elementKinds = map[string]Kind{
	"Window":                 KindWindow,
	"ContentPage":            KindContentPage,
	"Label":                  KindLabel,
	"TextBlock":              KindTextBlock,
	"Button":                 KindButton,
	"Grid":                   KindGrid,
	"Grid.ColumnDefinitions": KindGridColumnDefinitions,
	"Grid.RowDefinitions":    KindGridRowDefinitions,
	"ColumnDefinition":       KindColumnDefinition,
	"RowDefinition":          KindRowDefinition,
	"StackPanel":             KindStackLayout,
	"StackLayout":            KindStackLayout,
}

// KindForElement maps a local markup element name to its variant.
// Unrecognised names map to KindUnknown.
func KindForElement(name string) Kind {
	if k, ok := elementKinds[name]; ok {
		return k
	}
	return KindUnknown
}
