// Package wireless detects Wi-Fi interfaces and whether their radios can
// run an access point while staying associated as a client.
package wireless

import (
	"errors"
	"time"
)

// ErrNoInterfaceFound indicates no wireless interface exists (or the
// interface-query tool is unavailable).
var ErrNoInterfaceFound = errors.New("no wireless interface found")

// ErrNoCapableHardware indicates interfaces exist but none supports
// simultaneous AP and managed operation.
var ErrNoCapableHardware = errors.New("no interface supports simultaneous AP and managed mode")

// Interface is an immutable snapshot of one wireless interface at
// detection time. Re-query rather than mutate.
type Interface struct {
	Name         string `json:"name"`
	Phy          int    `json:"phy"`
	MAC          string `json:"mac,omitempty"`
	Up           bool   `json:"up"`
	Type         string `json:"type,omitempty"`
	SSID         string `json:"ssid,omitempty"`
	Channel      int    `json:"channel"`
	FrequencyMHz int    `json:"frequencyMhz"`
	// SupportsAPManaged reports whether the radio advertises an
	// interface combination with AP and managed mode at the same time.
	SupportsAPManaged bool `json:"supportsApManaged"`
}

// CommandExecutor interface for executing shell commands (for testing).
type CommandExecutor interface {
	Execute(name string, args ...string) ([]byte, error)
	ExecuteWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error)
}
