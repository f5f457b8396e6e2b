package network

import (
	"net"
	"strings"
	"testing"
)

func loopbackName(t *testing.T) string {
	t.Helper()
	ifaces, err := net.Interfaces()
	if err != nil {
		t.Fatalf("Interfaces() error: %v", err)
	}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagLoopback != 0 {
			return ifc.Name
		}
	}
	t.Skip("no loopback interface on this host")
	return ""
}

func TestInterfaceIPv4_Loopback(t *testing.T) {
	name := loopbackName(t)

	ip, err := InterfaceIPv4(name)
	if err != nil {
		t.Fatalf("InterfaceIPv4(%q) error: %v", name, err)
	}
	if !strings.HasPrefix(ip, "127.") {
		t.Errorf("Expected loopback address, got %q", ip)
	}
}

func TestInterfaceIPv4_UnknownInterface(t *testing.T) {
	_, err := InterfaceIPv4("definitely-not-an-interface0")
	if err == nil {
		t.Error("Expected error for unknown interface")
	}
}

func TestSubnetFor_Loopback(t *testing.T) {
	name := loopbackName(t)

	subnet, err := SubnetFor(name)
	if err != nil {
		t.Fatalf("SubnetFor(%q) error: %v", name, err)
	}
	if !strings.Contains(subnet, "/") {
		t.Errorf("Expected CIDR notation, got %q", subnet)
	}
	if !strings.HasPrefix(subnet, "127.") {
		t.Errorf("Expected loopback network, got %q", subnet)
	}
}

func TestSubnetFor_UnknownInterface(t *testing.T) {
	_, err := SubnetFor("definitely-not-an-interface0")
	if err == nil {
		t.Error("Expected error for unknown interface")
	}
}
