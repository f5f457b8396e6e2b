package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorForMAC(t *testing.T) {
	tests := []struct {
		name     string
		mac      string
		expected string
	}{
		{"known vendor lowercase", "dc:a6:32:12:ab:cd", "Raspberry Pi"},
		{"known vendor uppercase", "B8:27:EB:00:11:22", "Raspberry Pi"},
		{"iot chipset", "24:0a:c4:99:88:77", "Espressif"},
		{"unknown prefix", "00:11:22:33:44:55", ""},
		{"locally administered", "e2:11:22:33:44:55", "Private"},
		{"randomized phone address", "da:55:66:77:88:99", "Private"},
		{"too short", "dc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, vendorForMAC(tt.mac))
		})
	}
}

func TestIsLocallyAdministered(t *testing.T) {
	tests := []struct {
		mac      string
		expected bool
	}{
		{"e2:11:22:33:44:55", true},
		{"da:55:66:77:88:99", true},
		{"06:00:00:00:00:01", true},
		{"dc:a6:32:12:ab:cd", false},
		{"00:11:22:33:44:55", false},
		{"x", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isLocallyAdministered(tt.mac), tt.mac)
	}
}
