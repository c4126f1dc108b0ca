package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/xamlrt/internal/session"
	"github.com/muurk/xamlrt/internal/uitree"
)

// RunOnceModel is a Bubble Tea model that renders once and exits.
// This is used for "run once and exit" output patterns rather than
// interactive TUIs.
type RunOnceModel struct {
	content string
	width   int
	height  int
}

// NewRunOnceModel creates a model that will render the given content and exit
func NewRunOnceModel(content string) RunOnceModel {
	width, height := GetTerminalSize()
	return RunOnceModel{
		content: content,
		width:   width,
		height:  height,
	}
}

// Init implements tea.Model
func (m RunOnceModel) Init() tea.Cmd {
	// Immediately signal we're done after first render
	return tea.Quit
}

// Update implements tea.Model
func (m RunOnceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = GetTerminalSize()
	}
	return m, nil
}

// View implements tea.Model
func (m RunOnceModel) View() string {
	return m.content
}

// RenderOnce renders content using Bubble Tea's rendering engine and immediately exits.
func RenderOnce(content string) error {
	model := NewRunOnceModel(content)
	p := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, err := p.Run()
	return err
}

// Printer provides methods for printing UI components to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a header box
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	p.Print(NewHeader(title, command, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintDispatch prints the report for one dispatch
func (p *Printer) PrintDispatch(d uitree.Dispatch, err error) {
	p.Print(DispatchResult(d, err).SetWidth(p.width).Render())
	p.Newline()
}

// keyMap defines key bindings for the interactive program
type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Press key.Binding
	Quit  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Press, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Press, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "right"),
			key.WithHelp("tab", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "left"),
			key.WithHelp("shift+tab", "previous"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "click"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// dispatchMsg carries the outcome of a Click raised by the program.
type dispatchMsg struct {
	dispatch uitree.Dispatch
	err      error
}

// quitMsg is sent when a quit method runs.
type quitMsg struct{}

// Model is the interactive Bubble Tea model over a session.
type Model struct {
	session  *session.Session
	renderer Renderer
	root     *Widget
	buttons  []uitree.NodeID
	focus    int
	status   string
	err      error

	help help.Model
	keys keyMap
}

// NewModel builds the widget tree for s and focuses the first button.
func NewModel(s *session.Session, theme Theme) (Model, error) {
	m := Model{
		session:  s,
		renderer: NewRenderer(theme),
		help:     help.New(),
		keys:     newKeyMap(),
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	if len(m.buttons) == 0 {
		m.status = "no buttons to focus"
	}
	m.renderer.Focused = m.focused()
	return m, nil
}

func (m *Model) rebuild() error {
	root, err := Build(m.session.Tree())
	if err != nil {
		return err
	}
	m.root = root
	m.buttons = nil
	for _, b := range root.Buttons() {
		m.buttons = append(m.buttons, b.Node)
	}
	if m.focus >= len(m.buttons) {
		m.focus = 0
	}
	return nil
}

func (m Model) focused() uitree.NodeID {
	if len(m.buttons) == 0 {
		return ""
	}
	return m.buttons[m.focus]
}

// Focused returns the id of the focused button, empty when there is none.
func (m Model) Focused() uitree.NodeID {
	return m.focused()
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) click(id uitree.NodeID) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		d, err := s.Dispatch(context.Background(), id, "Click")
		return dispatchMsg{dispatch: d, err: err}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.renderer.Width = min(max(msg.Width, MinFrameWidth), MaxContentWidth)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if len(m.buttons) > 0 {
				m.focus = (m.focus + 1) % len(m.buttons)
			}
		case key.Matches(msg, m.keys.Prev):
			if len(m.buttons) > 0 {
				m.focus = (m.focus + len(m.buttons) - 1) % len(m.buttons)
			}
		case key.Matches(msg, m.keys.Press):
			if id := m.focused(); id != "" {
				return m, m.click(id)
			}
		}
		m.renderer.Focused = m.focused()
		return m, nil

	case dispatchMsg:
		m.status = statusLine(msg.dispatch, msg.err)
		if err := m.rebuild(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.renderer.Focused = m.focused()
		return m, nil

	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.err != nil {
		return ErrorMessageStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	var b strings.Builder
	b.WriteString(m.renderer.Render(m.root))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func statusLine(d uitree.Dispatch, err error) string {
	if err != nil {
		return FailureMarker + " " + err.Error()
	}
	if len(d.Firings) == 0 {
		return fmt.Sprintf("%s at %s: no handler (%d nodes visited)", d.Event, d.Origin, len(d.Visited))
	}
	parts := make([]string, 0, len(d.Firings))
	for _, f := range d.Firings {
		if f.Err != nil {
			parts = append(parts, FailureMarker+" "+f.Err.Error())
		} else {
			parts = append(parts, SuccessMarker+" "+f.Method)
		}
	}
	return fmt.Sprintf("%s at %s: %s", d.Event, d.Origin, strings.Join(parts, ", "))
}

// Run starts the interactive program and blocks until it exits. Quit
// methods bound in the registry stop the program.
func Run(s *session.Session, theme Theme) error {
	m, err := NewModel(s, theme)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	s.Registry().OnQuit(func() { p.Send(quitMsg{}) })
	defer s.Registry().OnQuit(nil)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("terminal program failed: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
