package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/xamlrt/internal/config"
	"github.com/muurk/xamlrt/internal/htmlview"
	"github.com/muurk/xamlrt/internal/logging"
	"github.com/muurk/xamlrt/internal/markup"
	"github.com/muurk/xamlrt/internal/metrics"
	"github.com/muurk/xamlrt/internal/registry"
	"github.com/muurk/xamlrt/internal/remote"
	"github.com/muurk/xamlrt/internal/session"
	"github.com/muurk/xamlrt/internal/ui"
	"github.com/muurk/xamlrt/internal/uitree"
	"github.com/muurk/xamlrt/internal/version"
)

// Command flags
var (
	renderWidth     int
	htmlOutput      string
	htmlInteractive bool
	listenAddr      string
	noAnnounce      bool
	instanceName    string
	allowOrigins    []string
	fireAddr        string
	fireName        string
	fireTimeout     int
	scanTimeout     int
	configForce     bool
)

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(htmlCmd)
	rootCmd.AddCommand(dispatchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fireCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)

	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Output width in columns (default: terminal width)")

	htmlCmd.Flags().StringVarP(&htmlOutput, "output", "o", "", "Write the page to a file instead of stdout")
	htmlCmd.Flags().BoolVar(&htmlInteractive, "interactive", false, "Include the script that posts clicks to /events")

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default: preferences.listen)")
	serveCmd.Flags().BoolVar(&noAnnounce, "no-announce", false, "Do not advertise the server over mDNS")
	serveCmd.Flags().StringVar(&instanceName, "name", "", "mDNS instance name (default: preferences.instance_name)")
	serveCmd.Flags().StringSliceVar(&allowOrigins, "allow-origin", nil, "Extra browser origin allowed to raise events (repeatable)")

	fireCmd.Flags().StringVar(&fireAddr, "addr", "", "Server address (host:port or URL); discovered over mDNS when empty")
	fireCmd.Flags().StringVar(&fireName, "name", "", "mDNS instance to target when --addr is empty")
	fireCmd.Flags().IntVar(&fireTimeout, "timeout", 5, "Timeout in seconds for discovery and the reply")

	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 3, "Scan timeout in seconds")

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing configuration file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// loadDocument reads a markup file and applies the preferred window size
// when the root window sets none.
func loadDocument(path string) (*uitree.Tree, error) {
	tree, err := markup.Load(path)
	if err != nil {
		return nil, err
	}
	root, ok := tree.Root()
	if !ok || root.Kind() != uitree.KindWindow {
		return tree, nil
	}
	prefs := appConfig.Preferences
	if _, ok := root.Width(); !ok {
		root.SetWidth(prefs.DefaultWidth)
	}
	if _, ok := root.Height(); !ok {
		root.SetHeight(prefs.DefaultHeight)
	}
	return tree, nil
}

// newSession binds tree to a registry built from the configured methods.
func newSession(tree *uitree.Tree, opts ...session.Option) (*session.Session, error) {
	reg := registry.New()
	if err := registry.FromActions(reg, appConfig.Methods); err != nil {
		return nil, fmt.Errorf("invalid method configuration: %w", err)
	}
	opts = append([]session.Option{session.WithName(appConfig.Preferences.InstanceName)}, opts...)
	return session.New(tree, reg, opts...), nil
}

func theme() ui.Theme {
	t := appConfig.Preferences.Theme
	return ui.NewTheme(t.Accent, t.Muted)
}

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the element tree",
	Long: `Load a markup document and print its element tree, one node per line as
"DUMP: <kind>" followed by the title (windows, pages) or text content
(labels, text blocks, buttons). Children are indented three spaces per level.
Use 'xamlrt dispatch' or GET /tree on a server for the same format.`,
	Example: `  xamlrt dump form.xaml
  xamlrt dump form.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := markup.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tree.Describe())
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render the document to the terminal once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		root, err := ui.Build(tree)
		if err != nil {
			return err
		}
		r := ui.NewRenderer(theme())
		if renderWidth > 0 {
			r.Width = renderWidth
		}
		return ui.RenderOnce(r.Render(root))
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html <file>",
	Short: "Render the document as an HTML page",
	Example: `  xamlrt html form.xaml -o form.html
  xamlrt html form.xaml --interactive > form.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if htmlOutput != "" {
			f, err := os.Create(htmlOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := htmlview.Render(w, appConfig.Preferences.InstanceName, tree, htmlInteractive); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
		return nil
	},
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <file> <node> [event]",
	Short: "Raise an event on a freshly loaded document",
	Long: `Load a document, raise an event (Click by default) at the given node and
report every method called while the event bubbled to the root. The tree is
printed afterwards so that attribute changes made by methods are visible.`,
	Example: `  xamlrt dispatch form.xaml node-3
  xamlrt dispatch form.xaml node-3 Window.Click`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		s, err := newSession(tree)
		if err != nil {
			return err
		}
		event := "Click"
		if len(args) == 3 {
			event = args[2]
		}

		p := ui.NewPrinter(os.Stdout)
		p.PrintHeader("Dispatch", "xamlrt dispatch",
			ui.Detail{Key: "Document", Value: args[0]},
			ui.Detail{Key: "Node", Value: args[1]},
			ui.Detail{Key: "Event", Value: event},
		)
		d, err := s.Dispatch(cmd.Context(), uitree.NodeID(args[1]), event)
		p.PrintDispatch(d, err)
		if err != nil {
			return err
		}
		p.Print(tree.Describe())
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run the document as an interactive terminal program",
	Long: `Run the document in the terminal. Tab and shift+tab move between buttons,
enter clicks the focused button, q quits. Methods bound to the quit action
also end the program.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		s, err := newSession(tree)
		if err != nil {
			return err
		}
		return ui.Run(s, theme())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve the document for remote events",
	Long: `Serve the document over HTTP and websocket:

  GET  /ws       websocket, JSON {"node","event"} requests
  POST /events   the same request over plain HTTP
  GET  /tree     the element tree
  GET  /view     interactive HTML rendering
  GET  /metrics  Prometheus metrics
  GET  /healthz  liveness

Browsers may only raise events from the server's own origin or one passed
with --allow-origin, and POST /events requires a JSON content type.

The server announces itself over mDNS unless disabled.`,
	Example: `  xamlrt serve form.xaml
  xamlrt serve form.xaml --listen 0.0.0.0:7878 --name kitchen`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	tree, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	prefs := appConfig.Preferences
	name := instanceName
	if name == "" {
		name = prefs.InstanceName
	}
	addr := listenAddr
	if addr == "" {
		addr = prefs.Listen
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s, err := newSession(tree,
		session.WithName(name),
		session.WithMetrics(metrics.New(metrics.WithRegistry(promReg))),
	)
	if err != nil {
		return err
	}

	srv, err := remote.New(s, &remote.Config{
		Addr:           addr,
		Announce:       prefs.AnnounceEnabled() && !noAnnounce,
		InstanceName:   name,
		Gatherer:       promReg,
		AllowedOrigins: allowOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	fmt.Printf("Serving %s as %q on http://%s (Ctrl+C to stop)\n", args[0], name, srv.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

var fireCmd = &cobra.Command{
	Use:   "fire <node> [event]",
	Short: "Raise an event on a running server",
	Long: `Send one event (Click by default) to a running 'xamlrt serve' and print
the methods it called. Without --addr the server is found over mDNS: by
--name when given, otherwise the only server on the network.`,
	Example: `  xamlrt fire node-3 --addr 127.0.0.1:7878
  xamlrt fire node-3 Click --name kitchen`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFire,
}

func runFire(cmd *cobra.Command, args []string) error {
	event := "Click"
	if len(args) == 2 {
		event = args[1]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(fireTimeout)*time.Second)
	defer cancel()

	target, err := resolveTarget(ctx)
	if err != nil {
		return err
	}
	logging.Debug("Firing remote event",
		zap.String("target", target),
		zap.String("node", args[0]),
		zap.String("event", event),
	)

	client, err := remote.Dial(ctx, target)
	if err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.Fire(ctx, args[0], event)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(os.Stdout)
	p.Print(replyResult(reply).SetWidth(p.Width()).Render())
	p.Newline()
	if reply.Error != "" {
		return errors.New(reply.Error)
	}
	return nil
}

// resolveTarget returns --addr, or finds a server over mDNS.
func resolveTarget(ctx context.Context) (string, error) {
	if fireAddr != "" {
		return fireAddr, nil
	}
	scanner := remote.NewScanner()
	scanner.Timeout = time.Duration(fireTimeout) * time.Second

	if fireName != "" {
		inst, err := scanner.Find(ctx, fireName)
		if err != nil {
			return "", err
		}
		return inst.WebSocketURL(), nil
	}

	found, err := scanner.Scan(ctx)
	if err != nil {
		return "", fmt.Errorf("scan failed: %w", err)
	}
	var instances []*remote.Instance
	for _, inst := range found {
		if inst.Compatible() {
			instances = append(instances, inst)
		}
	}
	switch len(instances) {
	case 0:
		return "", errors.New("no servers found; pass --addr")
	case 1:
		return instances[0].WebSocketURL(), nil
	default:
		names := make([]string, 0, len(instances))
		for _, inst := range instances {
			names = append(names, inst.Name)
		}
		return "", fmt.Errorf("found %d servers (%s); pass --name or --addr", len(instances), strings.Join(names, ", "))
	}
}

// replyResult formats a remote reply the way local dispatches are shown.
func replyResult(reply *remote.Reply) *ui.Result {
	title := fmt.Sprintf("%s at %s", reply.Event, reply.Node)
	if reply.Error != "" {
		return ui.NewFailureResult(title, errors.New(reply.Error))
	}

	details := []ui.Detail{{Key: "Visited", Value: fmt.Sprintf("%d nodes", reply.Visited)}}
	for _, f := range reply.Fired {
		v := ui.FiredMarker + " " + f.Method
		if f.Error != "" {
			v = ui.FailureMarker + " " + f.Method + ": " + f.Error
		}
		details = append(details, ui.Detail{Key: f.Node, Value: v})
	}
	if failed := reply.Failed(); len(failed) > 0 {
		return ui.NewFailureResult(title, fmt.Errorf("%d of %d handlers failed", len(failed), len(reply.Fired)), details...)
	}
	return ui.NewSuccessResult(title, details...)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find running servers on the network",
	Long: `Listen for mDNS announcements from 'xamlrt serve' and list every server
that answers before the timeout.`,
	Example: `  xamlrt scan
  xamlrt scan --timeout 10`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for xamlrt servers (timeout: %ds)...\n\n", scanTimeout)

	scanner := remote.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	instances, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(instances) == 0 {
		fmt.Println("No servers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure 'xamlrt serve' is running without --no-announce")
		fmt.Println("  - Check that multicast DNS is allowed on this network")
		fmt.Println("  - Try increasing --timeout")
		return nil
	}

	fmt.Printf("Found %d server(s):\n\n", len(instances))
	for i, inst := range instances {
		fmt.Printf("%d. %s\n", i+1, inst.Name)
		fmt.Printf("   Host:    %s\n", inst.Hostname)
		fmt.Printf("   URL:     %s\n", inst.BaseURL())
		if root := inst.GetMetadata("root"); root != "" {
			fmt.Printf("   Root:    %s\n", root)
		}
		if v := inst.GetMetadata("version"); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		if !inst.Compatible() {
			fmt.Printf("   Note:    speaks protocol %s, this client speaks %d\n", inst.GetMetadata("proto"), version.Protocol)
		}
		fmt.Println()
	}

	fmt.Println("Use 'xamlrt fire <node> --name <server>' to raise an event")
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// The file may be missing or broken; only logging is set up here.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(logLevel)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with example method bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig(configPath, configForce)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			fmt.Println(configPath)
			return nil
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}
