// Package network provides utilities for network interface addressing.
package network

import (
	"fmt"
	"net"
)

// InterfaceIPv4 returns the first IPv4 address assigned to the named
// interface. For a running hotspot interface this is create_ap's
// gateway address.
func InterfaceIPv4(name string) (string, error) {
	ifc, err := net.InterfaceByName(name)
	if err != nil {
		return "", err
	}
	addrs, err := ifc.Addrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", fmt.Errorf("no IPv4 address on %s", name)
}

// SubnetFor returns the IPv4 network the interface lives in, in CIDR
// notation.
func SubnetFor(name string) (string, error) {
	ifc, err := net.InterfaceByName(name)
	if err != nil {
		return "", err
	}
	addrs, err := ifc.Addrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ipNet.IP.To4() == nil {
			continue
		}
		masked := &net.IPNet{IP: ipNet.IP.Mask(ipNet.Mask), Mask: ipNet.Mask}
		return masked.String(), nil
	}
	return "", fmt.Errorf("no IPv4 network on %s", name)
}
