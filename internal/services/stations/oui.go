package stations

import "strings"

// vendorForMAC resolves a client MAC to its manufacturer via the OUI
// prefix. Returns "Private" for locally administered (randomized)
// addresses, since those carry no real OUI, and "" when the prefix is
// not in the table.
func vendorForMAC(mac string) string {
	if isLocallyAdministered(mac) {
		return "Private"
	}
	prefix := strings.ToUpper(mac)
	if len(prefix) < 8 {
		return ""
	}
	prefix = prefix[:8] // "AA:BB:CC"
	return ouiTable[prefix]
}

// isLocallyAdministered checks bit 0x02 of the first octet. Modern
// phones randomize their Wi-Fi MAC per network, and those addresses
// always have this bit set.
func isLocallyAdministered(mac string) bool {
	if len(mac) < 2 {
		return false
	}
	c := mac[1]
	var nibble byte
	switch {
	case c >= '0' && c <= '9':
		nibble = c - '0'
	case c >= 'a' && c <= 'f':
		nibble = c - 'a' + 10
	case c >= 'A' && c <= 'F':
		nibble = c - 'A' + 10
	default:
		return false
	}
	return nibble&0x02 != 0
}

// ouiTable maps the first 3 octets to manufacturer names. Deliberately
// small: these are the vendors that actually show up as hotspot
// clients (phones, laptops, single-board computers, IoT chipsets).
var ouiTable = map[string]string{
	// Apple
	"A4:83:E7": "Apple",
	"AC:BC:32": "Apple",
	"38:C9:86": "Apple",
	"3C:22:FB": "Apple",
	"DC:A9:04": "Apple",
	"F0:18:98": "Apple",
	"28:6A:BA": "Apple",
	"70:56:81": "Apple",

	// Samsung
	"B0:72:BF": "Samsung",
	"34:14:5F": "Samsung",
	"8C:77:12": "Samsung",
	"E4:92:FB": "Samsung",
	"D0:87:E2": "Samsung",
	"5C:49:7D": "Samsung",

	// Google / Nest
	"54:60:09": "Google",
	"F4:F5:D8": "Google",
	"A4:77:33": "Google",
	"30:FD:38": "Google",
	"18:D6:C7": "Google Nest",

	// Amazon
	"F0:F0:A4": "Amazon",
	"44:65:0D": "Amazon",
	"AC:63:BE": "Amazon",
	"68:54:FD": "Amazon",

	// Huawei / Honor
	"00:18:82": "Huawei",
	"04:F9:38": "Huawei",
	"08:19:A6": "Huawei",
	"48:46:FB": "Huawei",
	"70:8A:09": "Huawei",

	// Xiaomi
	"04:CF:8C": "Xiaomi",
	"28:6C:07": "Xiaomi",
	"34:CE:00": "Xiaomi",
	"58:44:98": "Xiaomi",
	"64:B4:73": "Xiaomi",

	// OnePlus
	"94:65:2D": "OnePlus",

	// Intel (laptop Wi-Fi cards)
	"00:1E:64": "Intel",
	"3C:97:0E": "Intel",
	"68:17:29": "Intel",
	"7C:5C:F8": "Intel",
	"A4:34:D9": "Intel",
	"DC:71:96": "Intel",

	// Qualcomm Atheros
	"00:03:7F": "Qualcomm Atheros",
	"1C:B7:2C": "Qualcomm Atheros",
	"54:E6:FC": "Qualcomm Atheros",

	// Broadcom
	"00:10:18": "Broadcom",
	"D8:B1:22": "Broadcom",

	// MediaTek / Ralink / Realtek chipsets
	"00:0C:E7": "MediaTek",
	"00:0C:43": "MediaTek",
	"00:17:7C": "Ralink",
	"00:E0:4C": "Realtek",
	"52:54:00": "Realtek",

	// Microsoft
	"28:18:78": "Microsoft",
	"7C:1E:52": "Microsoft",
	"B4:AE:2B": "Microsoft",

	// Sony
	"F8:D0:AC": "Sony",
	"AC:89:95": "Sony",
	"78:C8:81": "Sony",

	// LG
	"10:68:3F": "LG",
	"34:4D:F7": "LG",
	"CC:FA:00": "LG",

	// Motorola
	"34:BB:1F": "Motorola",
	"5C:5A:C7": "Motorola",

	// Dell
	"14:18:77": "Dell",
	"18:03:73": "Dell",
	"24:B6:FD": "Dell",

	// HP
	"3C:D9:2B": "HP",
	"94:57:A5": "HP",
	"B0:5A:DA": "HP",

	// Espressif (ESP32/ESP8266 IoT)
	"24:0A:C4": "Espressif",
	"24:62:AB": "Espressif",
	"30:AE:A4": "Espressif",
	"A4:CF:12": "Espressif",
	"BC:DD:C2": "Espressif",

	// Raspberry Pi
	"B8:27:EB": "Raspberry Pi",
	"DC:A6:32": "Raspberry Pi",
	"E4:5F:01": "Raspberry Pi",

	// Sonos
	"5C:AA:FD": "Sonos",
	"78:28:CA": "Sonos",
	"94:9F:3E": "Sonos",

	// Roku
	"9C:B2:E4": "Roku",
	"D8:31:34": "Roku",
	"CC:6D:A0": "Roku",

	// Ring
	"34:3E:A4": "Ring",
	"B0:09:DA": "Ring",

	// Wyze
	"2C:AA:8E": "Wyze",
}
