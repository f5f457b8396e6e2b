// Package hotspot supervises the create_ap helper that turns a wireless
// interface into an access point. At most one session is active per
// service instance; every lifecycle transition is persisted through the
// session repository and published on the event bus.
package hotspot

import "time"

// SessionState is the lifecycle state of a hotspot session.
type SessionState string

const (
	StateStopped  SessionState = "STOPPED"
	StateStarting SessionState = "STARTING"
	StateRunning  SessionState = "RUNNING"
	StateStopping SessionState = "STOPPING"
	StateFailed   SessionState = "FAILED"
)

// Active reports whether the state describes a live helper process.
func (s SessionState) Active() bool {
	return s == StateStarting || s == StateRunning || s == StateStopping
}

// Config describes one hotspot to bring up. The SSID and passphrase
// are required; an empty interface lets the detector pick the first
// capable one, and a zero channel uses the chosen interface's current
// channel so AP and uplink share one radio channel.
type Config struct {
	SSID       string `json:"ssid"`
	Passphrase string `json:"passphrase"`
	Interface  string `json:"interface,omitempty"`
	Channel    int    `json:"channel,omitempty"`
}

// Session is a point-in-time view of one hotspot run. The passphrase is
// deliberately absent; Output carries a bounded tail of helper output.
type Session struct {
	ID        string       `json:"id"`
	SSID      string       `json:"ssid"`
	Interface string       `json:"interface"`
	Channel   int          `json:"channel"`
	State     SessionState `json:"state"`
	Gateway   string       `json:"gateway,omitempty"`
	PID       int          `json:"pid,omitempty"`
	StartedAt time.Time    `json:"startedAt"`
	StoppedAt *time.Time   `json:"stoppedAt,omitempty"`
	ExitCode  *int         `json:"exitCode,omitempty"`
	Error     string       `json:"error,omitempty"`
	Output    []string     `json:"output,omitempty"`
}

// HelperOutput is one line of create_ap output, published on the event bus.
type HelperOutput struct {
	SessionID string `json:"sessionId"`
	Line      string `json:"line"`
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	Execute(name string, args ...string) ([]byte, error)
	ExecuteWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error)
}

// Options tune the service. Zero durations select the documented
// defaults. An empty ElevatePath runs create_ap directly, for daemons
// that already run privileged.
type Options struct {
	CreateAPPath     string
	ElevatePath      string
	DefaultInterface string
	DefaultChannel   int
	StartTimeout     time.Duration
	StopGracePeriod  time.Duration
	CommandTimeout   time.Duration
	DevicePoll       time.Duration
	HistoryLimit     int
}
