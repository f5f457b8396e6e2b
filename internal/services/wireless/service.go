package wireless

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idkspot/idkspot-go/pkg/iw"
)

var logger = logrus.WithField("module", "wireless")

// DefaultCommandTimeout bounds one iw invocation so a wedged tool cannot
// hang callers.
const DefaultCommandTimeout = 10 * time.Second

// Config holds wireless detection settings.
type Config struct {
	IWPath         string
	CommandTimeout time.Duration
}

// Service queries wireless hardware capabilities via iw and netlink.
type Service struct {
	mu       sync.RWMutex
	snapshot []Interface
	lastScan time.Time

	iwPath  string
	timeout time.Duration

	// Command executor (for testing)
	executor CommandExecutor
	// Link state reader (for testing; real one uses netlink)
	linkState func(name string) (mac string, up bool, err error)
}

// realExecutor implements CommandExecutor using actual shell commands.
type realExecutor struct{}

func (e *realExecutor) Execute(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (e *realExecutor) ExecuteWithTimeout(timeout time.Duration, name string, args ...string) ([]byte, error) {
	if timeout <= 0 {
		return e.Execute(name, args...)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// NewService creates a new wireless detection service.
func NewService(cfg Config) *Service {
	if cfg.IWPath == "" {
		cfg.IWPath = "iw"
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}
	return &Service{
		iwPath:    cfg.IWPath,
		timeout:   cfg.CommandTimeout,
		executor:  &realExecutor{},
		linkState: readLinkState,
	}
}

// SetExecutor sets the command executor (for testing).
func (s *Service) SetExecutor(executor CommandExecutor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executor = executor
}

// Detect enumerates wireless interfaces in driver order and flags those
// whose radio supports simultaneous AP+managed operation. Returns
// ErrNoInterfaceFound when nothing is detected; a capable-hardware miss
// is not an error, callers inspect SupportsAPManaged themselves.
func (s *Service) Detect(ctx context.Context) ([]Interface, error) {
	s.mu.RLock()
	executor := s.executor
	linkState := s.linkState
	s.mu.RUnlock()

	devOut, err := executor.ExecuteWithTimeout(s.timeout, s.iwPath, "dev")
	if err != nil {
		logger.WithError(err).Warn("iw dev failed")
		return nil, fmt.Errorf("%w: iw dev: %v", ErrNoInterfaceFound, err)
	}

	devices := iw.ParseDev(string(devOut))
	if len(devices) == 0 {
		return nil, ErrNoInterfaceFound
	}

	// Capability report failure degrades to capability=false rather than
	// failing detection.
	var phys map[int]*iw.Phy
	listOut, err := executor.ExecuteWithTimeout(s.timeout, s.iwPath, "list")
	if err != nil {
		logger.WithError(err).Warn("iw list failed, reporting no AP+managed support")
	} else {
		phys = iw.ParseList(string(listOut))
	}

	interfaces := make([]Interface, 0, len(devices))
	for _, dev := range devices {
		ifc := Interface{
			Name:         dev.Name,
			Phy:          dev.PhyIndex,
			MAC:          dev.MAC,
			Type:         dev.Type,
			SSID:         dev.SSID,
			Channel:      dev.Channel,
			FrequencyMHz: dev.FrequencyMHz,
		}
		if ifc.Channel == 0 && dev.FrequencyMHz > 0 {
			ifc.Channel = iw.FreqToChannel(dev.FrequencyMHz)
		}
		if phy, ok := phys[dev.PhyIndex]; ok {
			ifc.SupportsAPManaged = phy.SupportsAPManaged
		}
		if mac, up, err := linkState(dev.Name); err == nil {
			ifc.Up = up
			if ifc.MAC == "" {
				ifc.MAC = mac
			}
		}
		interfaces = append(interfaces, ifc)
	}

	s.mu.Lock()
	s.snapshot = interfaces
	s.lastScan = time.Now()
	s.mu.Unlock()

	logger.WithField("count", len(interfaces)).Debug("Wireless interfaces detected")
	return interfaces, nil
}

// Snapshot returns the last detection result without re-querying, which
// may be nil before the first Detect.
func (s *Service) Snapshot() []Interface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// LastScan returns when the snapshot was taken.
func (s *Service) LastScan() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastScan
}

// Choose re-detects and resolves the interface a hotspot should use.
// With an empty name it picks the first interface whose radio supports
// AP+managed, failing with ErrNoCapableHardware when none does. With a
// name it returns that interface regardless of capability so the caller
// can decide how to report an incapable choice.
func (s *Service) Choose(ctx context.Context, name string) (*Interface, error) {
	interfaces, err := s.Detect(ctx)
	if err != nil {
		return nil, err
	}

	if name == "" {
		for i := range interfaces {
			if interfaces[i].SupportsAPManaged {
				return &interfaces[i], nil
			}
		}
		return nil, ErrNoCapableHardware
	}

	for i := range interfaces {
		if interfaces[i].Name == name {
			return &interfaces[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoInterfaceFound, name)
}
