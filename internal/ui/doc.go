// Package ui renders a UI tree in the terminal.
//
// Rendering runs in two steps. Build walks the tree with a scope-stack
// visitor and produces a Widget hierarchy: frames for Window and ContentPage,
// text widgets for Label and TextBlock, focusable buttons, and stack and grid
// containers. A Renderer then draws that hierarchy with Lipgloss.
//
// # Interactive Program
//
// Run starts a Bubble Tea program over a session. Tab and shift+tab move
// focus between buttons; enter raises a Click event at the focused button's
// node, which bubbles to the root through the session. The widget tree is
// rebuilt after every dispatch so attribute changes made by methods are
// visible immediately.
//
// # One-shot Output
//
// RenderOnce and Printer follow a "run once and exit" pattern for commands
// that print a rendering, a document header or a dispatch report without
// user interaction.
//
// # Logging Integration
//
// This package expects logging to be controlled via the XAMLRT_LOG_LEVEL
// environment variable. Logs go to stderr; when unset, zap logging is silent
// so the rendered output is displayed cleanly.
package ui
