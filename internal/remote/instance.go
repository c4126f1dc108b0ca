package remote

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/muurk/xamlrt/internal/version"
)

// Instance is a running xamlrt server found on the network.
type Instance struct {
	// Name is the mDNS instance name (the session name by default)
	Name string

	// Hostname is the advertising host (e.g., "desk.local.")
	Hostname string

	// IP is the address to connect to (IPv4 preferred)
	IP string

	// Port is the HTTP port
	Port int

	// Metadata holds the TXT records: "version", "proto" (event protocol
	// revision), "ws" (websocket path) and "root" (root element name)
	Metadata map[string]string

	// DiscoveredAt is when the instance answered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("xamlrt %s (%s) at %s", i.Name, i.Hostname, i.hostPort())
}

func (i *Instance) hostPort() string {
	return net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}

// BaseURL returns the HTTP base URL for the instance
func (i *Instance) BaseURL() string {
	return "http://" + i.hostPort()
}

// WebSocketURL returns the event endpoint, honouring an advertised path.
func (i *Instance) WebSocketURL() string {
	path := i.GetMetadata("ws")
	if path == "" {
		path = "/ws"
	}
	return "ws://" + i.hostPort() + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}

// Compatible reports whether the instance speaks this build's event
// protocol. Instances that do not announce a revision are assumed to.
func (i *Instance) Compatible() bool {
	p := i.GetMetadata("proto")
	return p == "" || p == strconv.Itoa(version.Protocol)
}
