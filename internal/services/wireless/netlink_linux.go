//go:build linux

package wireless

import (
	"net"

	"github.com/vishvananda/netlink"
)

// readLinkState reads MAC address and oper state for a link from the
// kernel. Detection degrades gracefully when this fails, so errors are
// returned rather than logged here.
func readLinkState(name string) (string, bool, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return "", false, err
	}
	attrs := link.Attrs()

	mac := ""
	if len(attrs.HardwareAddr) > 0 {
		mac = attrs.HardwareAddr.String()
	}
	up := attrs.OperState == netlink.OperUp || attrs.Flags&net.FlagUp != 0
	return mac, up, nil
}
