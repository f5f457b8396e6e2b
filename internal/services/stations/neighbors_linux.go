//go:build linux

package stations

import (
	"strings"

	"github.com/vishvananda/netlink"
)

// readNeighbors lists resolved IPv4 neighbors on the named interface.
// Entries the kernel has given up on are skipped.
func readNeighbors(name string) ([]neighborEntry, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return nil, err
	}
	neighs, err := netlink.NeighList(link.Attrs().Index, netlink.FAMILY_V4)
	if err != nil {
		return nil, err
	}

	entries := make([]neighborEntry, 0, len(neighs))
	for _, n := range neighs {
		if n.State&(netlink.NUD_FAILED|netlink.NUD_INCOMPLETE|netlink.NUD_NOARP) != 0 {
			continue
		}
		if len(n.HardwareAddr) == 0 || n.IP == nil {
			continue
		}
		entries = append(entries, neighborEntry{
			ip:  n.IP.String(),
			mac: strings.ToLower(n.HardwareAddr.String()),
		})
	}
	return entries, nil
}
