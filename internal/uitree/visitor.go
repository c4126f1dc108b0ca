package uitree

// Visitor receives a two-phase callback pair per node: StartVisit<Kind> on
// entry, before any child, and Visit<Kind> on exit, after every child has
// been visited. Renderers use the pair to open and close an accumulation
// scope for the node's subtree.
type Visitor interface {
	StartVisitWindow(Window)
	VisitWindow(Window)
	StartVisitContentPage(ContentPage)
	VisitContentPage(ContentPage)
	StartVisitLabel(Label)
	VisitLabel(Label)
	StartVisitTextBlock(TextBlock)
	VisitTextBlock(TextBlock)
	StartVisitButton(Button)
	VisitButton(Button)
	StartVisitGrid(Grid)
	VisitGrid(Grid)
	StartVisitGridColumnDefinitions(GridColumnDefinitions)
	VisitGridColumnDefinitions(GridColumnDefinitions)
	StartVisitGridRowDefinitions(GridRowDefinitions)
	VisitGridRowDefinitions(GridRowDefinitions)
	StartVisitColumnDefinition(ColumnDefinition)
	VisitColumnDefinition(ColumnDefinition)
	StartVisitRowDefinition(RowDefinition)
	VisitRowDefinition(RowDefinition)
	StartVisitStackLayout(StackLayout)
	VisitStackLayout(StackLayout)
	StartVisitUnknown(Unknown)
	VisitUnknown(Unknown)
}

// Accept drives v over the subtree rooted at n, depth first: the kind's
// start hook, every child in document order, then the kind's visit hook.
// No node lock is held while v runs.
func (n *Node) Accept(v Visitor) {
	startVisit(v, n)
	for _, c := range n.Children() {
		c.Accept(v)
	}
	finishVisit(v, n)
}

func startVisit(v Visitor, n *Node) {
	switch n.kind {
	case KindWindow:
		v.StartVisitWindow(Window{n})
	case KindContentPage:
		v.StartVisitContentPage(ContentPage{n})
	case KindLabel:
		v.StartVisitLabel(Label{n})
	case KindTextBlock:
		v.StartVisitTextBlock(TextBlock{n})
	case KindButton:
		v.StartVisitButton(Button{n})
	case KindGrid:
		v.StartVisitGrid(Grid{n})
	case KindGridColumnDefinitions:
		v.StartVisitGridColumnDefinitions(GridColumnDefinitions{n})
	case KindGridRowDefinitions:
		v.StartVisitGridRowDefinitions(GridRowDefinitions{n})
	case KindColumnDefinition:
		v.StartVisitColumnDefinition(ColumnDefinition{n})
	case KindRowDefinition:
		v.StartVisitRowDefinition(RowDefinition{n})
	case KindStackLayout:
		v.StartVisitStackLayout(StackLayout{n})
	default:
		v.StartVisitUnknown(Unknown{n})
	}
}

func finishVisit(v Visitor, n *Node) {
	switch n.kind {
	case KindWindow:
		v.VisitWindow(Window{n})
	case KindContentPage:
		v.VisitContentPage(ContentPage{n})
	case KindLabel:
		v.VisitLabel(Label{n})
	case KindTextBlock:
		v.VisitTextBlock(TextBlock{n})
	case KindButton:
		v.VisitButton(Button{n})
	case KindGrid:
		v.VisitGrid(Grid{n})
	case KindGridColumnDefinitions:
		v.VisitGridColumnDefinitions(GridColumnDefinitions{n})
	case KindGridRowDefinitions:
		v.VisitGridRowDefinitions(GridRowDefinitions{n})
	case KindColumnDefinition:
		v.VisitColumnDefinition(ColumnDefinition{n})
	case KindRowDefinition:
		v.VisitRowDefinition(RowDefinition{n})
	case KindStackLayout:
		v.VisitStackLayout(StackLayout{n})
	default:
		v.VisitUnknown(Unknown{n})
	}
}

// NopVisitor implements every Visitor method as a no-op. Embed it to
// override only the hooks of interest.
type NopVisitor struct{}

func (NopVisitor) StartVisitWindow(Window)                               {}
func (NopVisitor) VisitWindow(Window)                                    {}
func (NopVisitor) StartVisitContentPage(ContentPage)                     {}
func (NopVisitor) VisitContentPage(ContentPage)                          {}
func (NopVisitor) StartVisitLabel(Label)                                 {}
func (NopVisitor) VisitLabel(Label)                                      {}
func (NopVisitor) StartVisitTextBlock(TextBlock)                         {}
func (NopVisitor) VisitTextBlock(TextBlock)                              {}
func (NopVisitor) StartVisitButton(Button)                               {}
func (NopVisitor) VisitButton(Button)                                    {}
func (NopVisitor) StartVisitGrid(Grid)                                   {}
func (NopVisitor) VisitGrid(Grid)                                        {}
func (NopVisitor) StartVisitGridColumnDefinitions(GridColumnDefinitions) {}
func (NopVisitor) VisitGridColumnDefinitions(GridColumnDefinitions)      {}
func (NopVisitor) StartVisitGridRowDefinitions(GridRowDefinitions)       {}
func (NopVisitor) VisitGridRowDefinitions(GridRowDefinitions)            {}
func (NopVisitor) StartVisitColumnDefinition(ColumnDefinition)           {}
func (NopVisitor) VisitColumnDefinition(ColumnDefinition)                {}
func (NopVisitor) StartVisitRowDefinition(RowDefinition)                 {}
func (NopVisitor) VisitRowDefinition(RowDefinition)                      {}
func (NopVisitor) StartVisitStackLayout(StackLayout)                     {}
func (NopVisitor) VisitStackLayout(StackLayout)                          {}
func (NopVisitor) StartVisitUnknown(Unknown)                             {}
func (NopVisitor) VisitUnknown(Unknown)                                  {}

// ScopeStack is the accumulation discipline shared by tree builders. Each
// scope collects the artifacts produced by one subtree.
//
// A builder calls Enter from every start hook. From every visit hook it calls
// Leave to take the finished children, builds its own artifact from them and
// passes it to Emit, which adds it to the parent's scope. Emit reports false
// when there is no parent scope left, meaning the artifact belongs to the
// root and is the builder's final output.
type ScopeStack[T any] struct {
	scopes [][]T
}

// Enter opens an empty scope.
func (s *ScopeStack[T]) Enter() {
	s.scopes = append(s.scopes, nil)
}

// Leave closes the current scope and returns what it collected.
func (s *ScopeStack[T]) Leave() []T {
	if len(s.scopes) == 0 {
		return nil
	}
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return top
}

// Emit appends a to the current scope.
func (s *ScopeStack[T]) Emit(a T) bool {
	if len(s.scopes) == 0 {
		return false
	}
	s.scopes[len(s.scopes)-1] = append(s.scopes[len(s.scopes)-1], a)
	return true
}

// Depth returns the number of open scopes.
func (s *ScopeStack[T]) Depth() int {
	return len(s.scopes)
}
