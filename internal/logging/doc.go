// Package logging provides structured logging for the xamlrt runtime.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used across the tree runtime, the renderers and the remote
// event server.
//
// # Log Levels
//
//   - Debug: markup assembly progress, individual handler invocations
//   - Info: event dispatch summaries, remote connections, server lifecycle
//   - Warn: non-fatal issues (unresolved methods, dropped connections)
//   - Error: startup failures
//
// # Configuration
//
// Logging is silent unless a level is supplied, either explicitly or through
// the XAMLRT_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Output goes to stderr so that it never interleaves with a UI rendered on
// stdout.
//
// # Specialized Logging
//
//	logging.LogElement("+", "Window", 0)
//	logging.LogFiring("node-3", "Button.Click", "OnGo", nil)
//	logging.LogDispatch("node-3", "Click", 2, 1)
//	logging.LogConnection(remoteAddr, "websocket_upgraded")
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
