package config

import (
	"fmt"
	"strings"
)

// CurrentVersion is the only configuration file version this build reads.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version     int                `yaml:"version"`
	Preferences *Preferences       `yaml:"preferences,omitempty"`
	Methods     map[string]*Action `yaml:"methods,omitempty"` // Keyed by method name as written in markup
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	LogLevel      string `yaml:"log_level,omitempty"`      // debug, info, warn, error
	Listen        string `yaml:"listen,omitempty"`         // Remote event server address
	Announce      *bool  `yaml:"announce,omitempty"`       // Advertise the server over mDNS
	InstanceName  string `yaml:"instance_name,omitempty"`  // mDNS instance name
	DefaultWidth  int    `yaml:"default_width,omitempty"`  // Fallback window width
	DefaultHeight int    `yaml:"default_height,omitempty"` // Fallback window height
	Theme         *Theme `yaml:"theme,omitempty"`
}

// Theme holds the colors the terminal renderer uses. Values are lipgloss
// color strings ("#7D56F4", "205").
type Theme struct {
	Accent string `yaml:"accent"`
	Muted  string `yaml:"muted"`
}

// Action kinds a method binding can perform.
const (
	ActionLog  = "log"
	ActionSet  = "set"
	ActionQuit = "quit"
)

// Action is what a named method does when an event reaches it.
type Action struct {
	Kind    string `yaml:"action"`
	Message string `yaml:"message,omitempty"` // log: text to log
	Target  string `yaml:"target,omitempty"`  // set: node id
	Key     string `yaml:"key,omitempty"`     // set: attribute key, plain names are namespaced by the node type
	Value   string `yaml:"value,omitempty"`   // set: new value
}

// Default preference values.
const (
	DefaultListen       = "127.0.0.1:7878"
	DefaultInstanceName = "xamlrt"
	DefaultWidth        = 320
	DefaultHeight       = 200
	DefaultAccent       = "#7D56F4"
	DefaultMuted        = "#626262"
)

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version:     CurrentVersion,
		Preferences: DefaultPreferences(),
		Methods:     make(map[string]*Action),
	}
}

// DefaultPreferences returns the preferences used when the file sets none.
func DefaultPreferences() *Preferences {
	announce := true
	return &Preferences{
		Listen:        DefaultListen,
		Announce:      &announce,
		InstanceName:  DefaultInstanceName,
		DefaultWidth:  DefaultWidth,
		DefaultHeight: DefaultHeight,
		Theme: &Theme{
			Accent: DefaultAccent,
			Muted:  DefaultMuted,
		},
	}
}

// applyDefaults fills every preference the file left unset.
func (c *Config) applyDefaults() {
	if c.Methods == nil {
		c.Methods = make(map[string]*Action)
	}
	if c.Preferences == nil {
		c.Preferences = DefaultPreferences()
		return
	}

	def := DefaultPreferences()
	p := c.Preferences
	if p.Listen == "" {
		p.Listen = def.Listen
	}
	if p.Announce == nil {
		p.Announce = def.Announce
	}
	if p.InstanceName == "" {
		p.InstanceName = def.InstanceName
	}
	if p.DefaultWidth <= 0 {
		p.DefaultWidth = def.DefaultWidth
	}
	if p.DefaultHeight <= 0 {
		p.DefaultHeight = def.DefaultHeight
	}
	if p.Theme == nil {
		p.Theme = def.Theme
	} else {
		if p.Theme.Accent == "" {
			p.Theme.Accent = def.Theme.Accent
		}
		if p.Theme.Muted == "" {
			p.Theme.Muted = def.Theme.Muted
		}
	}
}

// AnnounceEnabled reports whether the remote server should advertise itself.
func (p *Preferences) AnnounceEnabled() bool {
	return p == nil || p.Announce == nil || *p.Announce
}

// GetMethod retrieves a method binding by name. Returns nil if the method
// isn't configured.
func (c *Config) GetMethod(name string) *Action {
	return c.Methods[name]
}

// SetMethod adds or replaces a method binding.
func (c *Config) SetMethod(name string, a *Action) {
	if c.Methods == nil {
		c.Methods = make(map[string]*Action)
	}
	c.Methods[name] = a
}

// Validate checks that every method binding names a known action with the
// fields that action needs.
func (c *Config) Validate() error {
	for name, a := range c.Methods {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("method %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single action.
func (a *Action) Validate() error {
	if a == nil {
		return fmt.Errorf("empty action")
	}
	switch strings.ToLower(a.Kind) {
	case ActionLog, ActionQuit:
		return nil
	case ActionSet:
		if a.Target == "" || a.Key == "" {
			return fmt.Errorf("set action requires target and key")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q (expected log, set or quit)", a.Kind)
	}
}
