package stations

import (
	"context"
	"net"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/idkspot/idkspot-go/pkg/iw"
)

var logger = logrus.WithField("module", "stations")

const (
	// DefaultLeaseFile is where dnsmasq keeps its lease database on most
	// distributions. create_ap points its dnsmasq instance there too.
	DefaultLeaseFile = "/var/lib/misc/dnsmasq.leases"

	// DefaultCommandTimeout bounds one iw invocation.
	DefaultCommandTimeout = 10 * time.Second

	// hostnameLookupTimeout caps a single reverse-DNS query so a dead
	// resolver cannot stall the whole device listing.
	hostnameLookupTimeout = time.Second
)

var leaseRegex = regexp.MustCompile(`^(\d+)\s+([0-9a-f:]+)\s+(\d+\.\d+\.\d+\.\d+)\s+(\S+)`)

// Config holds device enumeration settings.
type Config struct {
	IWPath           string
	LeaseFile        string
	CommandTimeout   time.Duration
	ResolveHostnames bool
}

// Service lists devices attached to the hotspot interface.
type Service struct {
	mu        sync.RWMutex
	iwPath    string
	leaseFile string
	timeout   time.Duration
	resolve   bool

	// Command executor (for testing)
	executor CommandExecutor
	// Neighbor table reader (for testing; real one uses netlink)
	neighbors func(iface string) ([]neighborEntry, error)
	// Reverse-DNS lookup (for testing)
	lookupAddr func(ctx context.Context, ip string) ([]string, error)
}

type neighborEntry struct {
	ip  string
	mac string
}

type lease struct {
	mac      string
	ip       string
	hostname string
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

// NewService creates a new device enumeration service.
func NewService(cfg Config) *Service {
	if cfg.IWPath == "" {
		cfg.IWPath = "iw"
	}
	if cfg.LeaseFile == "" {
		cfg.LeaseFile = DefaultLeaseFile
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}
	resolver := &net.Resolver{}
	return &Service{
		iwPath:    cfg.IWPath,
		leaseFile: cfg.LeaseFile,
		timeout:   cfg.CommandTimeout,
		resolve:   cfg.ResolveHostnames,
		executor:  &realExecutor{},
		neighbors: readNeighbors,
		lookupAddr: func(ctx context.Context, ip string) ([]string, error) {
			return resolver.LookupAddr(ctx, ip)
		},
	}
}

// SetExecutor sets the command executor (for testing).
func (s *Service) SetExecutor(executor CommandExecutor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executor = executor
}

// List returns the devices currently attached to iface. The driver's
// station dump is the primary source; DHCP leases and the neighbor
// table fill in addresses and hostnames, and entries seen by only one
// source are still reported. A non-empty subnet (CIDR) screens lease
// and neighbor rows: addresses outside it are leftovers from another
// network, not hotspot clients. Every source is best-effort, so a
// missing lease file or an unreadable neighbor table never fails the
// call.
func (s *Service) List(ctx context.Context, iface, subnet string) ([]Device, error) {
	s.mu.RLock()
	executor := s.executor
	neighbors := s.neighbors
	resolve := s.resolve
	s.mu.RUnlock()

	var ipNet *net.IPNet
	if subnet != "" {
		_, parsed, err := net.ParseCIDR(subnet)
		if err != nil {
			logger.WithError(err).WithField("subnet", subnet).Debug("Ignoring unparsable subnet")
		} else {
			ipNet = parsed
		}
	}
	inSubnet := func(ip string) bool {
		if ipNet == nil {
			return true
		}
		addr := net.ParseIP(ip)
		return addr != nil && ipNet.Contains(addr)
	}

	devices := make(map[string]*Device)
	var order []string
	upsert := func(mac string) *Device {
		mac = strings.ToLower(mac)
		d, ok := devices[mac]
		if !ok {
			d = &Device{MAC: mac}
			devices[mac] = d
			order = append(order, mac)
		}
		return d
	}

	// Associated stations straight from the driver.
	output, err := executor.ExecuteWithTimeout(s.timeout, s.iwPath, "dev", iface, "station", "dump")
	if err != nil {
		logger.WithError(err).WithField("interface", iface).Debug("Station dump unavailable")
	} else {
		now := time.Now()
		for _, st := range iw.ParseStationDump(string(output)) {
			d := upsert(st.MAC)
			if st.SignalDBm != 0 {
				signal := st.SignalDBm
				d.SignalDBm = &signal
			}
			if st.ConnectedTime > 0 {
				connectedAt := now.Add(-st.ConnectedTime)
				d.ConnectedAt = &connectedAt
			}
		}
	}

	// DHCP leases carry addresses and client-reported hostnames. The
	// lease file survives restarts, so rows from an earlier network are
	// screened out by subnet.
	for _, l := range s.readLeases() {
		if !inSubnet(l.ip) {
			continue
		}
		d := upsert(l.mac)
		if d.IP == "" {
			d.IP = l.ip
		}
		// dnsmasq writes "*" when the client sent no hostname
		if d.Hostname == "" && l.hostname != "*" {
			d.Hostname = l.hostname
		}
	}

	// The neighbor table catches static-IP clients that never took a lease.
	if entries, err := neighbors(iface); err != nil {
		logger.WithError(err).WithField("interface", iface).Debug("Neighbor table unavailable")
	} else {
		for _, n := range entries {
			if !inSubnet(n.ip) {
				continue
			}
			d := upsert(n.mac)
			if d.IP == "" {
				d.IP = n.ip
			}
		}
	}

	result := make([]Device, 0, len(order))
	for _, mac := range order {
		d := devices[mac]
		d.Vendor = vendorForMAC(d.MAC)
		result = append(result, *d)
	}

	if resolve {
		s.resolveHostnames(ctx, result)
	}
	return result, nil
}

func (s *Service) readLeases() []lease {
	data, err := os.ReadFile(s.leaseFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).WithField("path", s.leaseFile).Debug("Lease file unreadable")
		}
		return nil
	}

	var leases []lease
	for _, line := range strings.Split(string(data), "\n") {
		matches := leaseRegex.FindStringSubmatch(line)
		if len(matches) < 5 {
			continue
		}
		leases = append(leases, lease{
			mac:      strings.ToLower(matches[2]),
			ip:       matches[3],
			hostname: matches[4],
		})
	}
	return leases
}

// resolveHostnames fills missing hostnames via reverse DNS. Lookups run
// concurrently, each under its own short deadline.
func (s *Service) resolveHostnames(ctx context.Context, devices []Device) {
	s.mu.RLock()
	lookupAddr := s.lookupAddr
	s.mu.RUnlock()

	var wg sync.WaitGroup
	for i := range devices {
		if devices[i].Hostname != "" || devices[i].IP == "" {
			continue
		}
		wg.Add(1)
		go func(d *Device) {
			defer wg.Done()
			lookupCtx, cancel := context.WithTimeout(ctx, hostnameLookupTimeout)
			defer cancel()
			names, err := lookupAddr(lookupCtx, d.IP)
			if err != nil || len(names) == 0 {
				return
			}
			d.Hostname = strings.TrimSuffix(names[0], ".")
		}(&devices[i])
	}
	wg.Wait()
}
