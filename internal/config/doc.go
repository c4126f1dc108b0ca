// Package config provides user configuration management for xamlrt.
//
// The configuration is a YAML file holding application preferences and the
// method bindings that markup event attributes resolve to. The file follows
// OS-specific conventions for its location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/xamlrt/config.yaml or $HOME/.config/xamlrt/config.yaml
//   - macOS: $HOME/.config/xamlrt/config.yaml
//   - Windows: %LOCALAPPDATA%\xamlrt\config.yaml
//
// # Method Bindings
//
// Each entry under methods names a method that markup can reference from an
// event attribute (Click="OnGo") and the action it performs:
//
//	methods:
//	  OnGo:
//	    action: set
//	    target: node-2
//	    key: Label.Text
//	    value: Going
//	  OnQuit:
//	    action: quit
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.SetMethod("OnHello", &config.Action{Kind: config.ActionLog, Message: "hello"})
//	if err := cfg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global configuration uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex so writes are atomic.
package config
