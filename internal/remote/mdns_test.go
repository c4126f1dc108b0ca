package remote

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name: "IPv4 instance",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "desk"},
				HostName:      "desk.local.",
				Port:          7878,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.20")},
				Text:          []string{"version=v1.0.0", "ws=/ws", "root=Window"},
			},
			wantName: "desk",
			wantIP:   "192.168.1.20",
			wantPort: 7878,
		},
		{
			name: "IPv4 preferred over IPv6",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "both"},
				Port:          9000,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantName: "both",
			wantIP:   "10.0.0.5",
			wantPort: 9000,
		},
		{
			name: "IPv6 fallback",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "v6"},
				Port:          7878,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantName: "v6",
			wantIP:   "fe80::1",
			wantPort: 7878,
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				Port:          7878,
			},
			wantNil: true,
		},
		{
			name: "no port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "noport"},
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil: true,
		},
		{
			name: "no instance name",
			entry: &zeroconf.ServiceEntry{
				Port:     7878,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if inst != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", inst)
				}
				return
			}
			if inst == nil {
				t.Fatal("parseServiceEntry() = nil, want instance")
			}
			if inst.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", inst.Name, tt.wantName)
			}
			if inst.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", inst.IP, tt.wantIP)
			}
			if inst.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", inst.Port, tt.wantPort)
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	inst := parseServiceEntry(&zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "desk"},
		Port:          7878,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.1.20")},
		Text:          []string{"root=Window", "flag", "ws=/events/ws"},
	})
	if inst == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if got := inst.GetMetadata("root"); got != "Window" {
		t.Errorf("root = %q, want Window", got)
	}
	if _, ok := inst.Metadata["flag"]; !ok {
		t.Error("key without value should be kept")
	}
	if got := inst.WebSocketURL(); got != "ws://192.168.1.20:7878/events/ws" {
		t.Errorf("WebSocketURL() = %q", got)
	}
}

func TestInstanceURLs(t *testing.T) {
	tests := []struct {
		name    string
		inst    *Instance
		wantURL string
		wantWS  string
	}{
		{
			name:    "IPv4",
			inst:    &Instance{Name: "a", IP: "192.168.1.20", Port: 7878},
			wantURL: "http://192.168.1.20:7878",
			wantWS:  "ws://192.168.1.20:7878/ws",
		},
		{
			name:    "IPv6 is bracketed",
			inst:    &Instance{Name: "b", IP: "fe80::1", Port: 7878},
			wantURL: "http://[fe80::1]:7878",
			wantWS:  "ws://[fe80::1]:7878/ws",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inst.BaseURL(); got != tt.wantURL {
				t.Errorf("BaseURL() = %q, want %q", got, tt.wantURL)
			}
			if got := tt.inst.WebSocketURL(); got != tt.wantWS {
				t.Errorf("WebSocketURL() = %q, want %q", got, tt.wantWS)
			}
			if got := tt.inst.GetMetadata("missing"); got != "" {
				t.Errorf("GetMetadata() = %q, want empty", got)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	in := []*Instance{
		{Name: "a", IP: "10.0.0.1"},
		{Name: "b", IP: "10.0.0.2"},
		{Name: "a", IP: "fe80::1"},
	}
	out := dedupe(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].IP != "10.0.0.1" {
		t.Errorf("first answer should win, got %q", out[0].IP)
	}
}

func TestNewScanner(t *testing.T) {
	if s := NewScanner(); s.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}

func TestInstanceCompatible(t *testing.T) {
	tests := []struct {
		proto string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"2", false},
	}
	for _, tt := range tests {
		t.Run("proto="+tt.proto, func(t *testing.T) {
			inst := &Instance{Name: "a", Metadata: map[string]string{}}
			if tt.proto != "" {
				inst.Metadata["proto"] = tt.proto
			}
			if got := inst.Compatible(); got != tt.want {
				t.Errorf("Compatible() = %v, want %v", got, tt.want)
			}
		})
	}
}
