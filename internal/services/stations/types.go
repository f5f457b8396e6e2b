// Package stations enumerates client devices attached to a running
// hotspot. It merges the driver's association list, the dnsmasq lease
// table and the kernel neighbor table into one view keyed by MAC
// address, with best-effort hostname and vendor resolution on top.
package stations

import "time"

// Device is one client attached to the hotspot.
type Device struct {
	MAC         string     `json:"mac"`
	IP          string     `json:"ip,omitempty"`
	Hostname    string     `json:"hostname,omitempty"`
	Vendor      string     `json:"vendor,omitempty"`
	ConnectedAt *time.Time `json:"connectedAt,omitempty"`
	SignalDBm   *int       `json:"signalDbm,omitempty"`
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	Execute(name string, args ...string) ([]byte, error)
	ExecuteWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error)
}
