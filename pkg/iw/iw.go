// Package iw parses the text output of the iw(8) wireless configuration
// tool: interface listings (`iw dev`), per-radio capability reports
// (`iw list`), and associated-station dumps (`iw dev <if> station dump`).
// It performs no command execution and holds no state.
package iw

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Device is one entry from `iw dev` output.
type Device struct {
	Name         string
	PhyIndex     int
	IfIndex      int
	MAC          string
	Type         string
	SSID         string
	Channel      int
	FrequencyMHz int
}

// Phy is one radio from `iw list` output.
type Phy struct {
	Index int
	// SupportsAPManaged is true when a single reported interface
	// combination allows AP and managed mode on the same radio at once.
	SupportsAPManaged bool
	// Combinations holds the raw combination lines for diagnostics.
	Combinations []string
}

// Station is one entry from `iw dev <if> station dump` output.
type Station struct {
	MAC           string
	SignalDBm     int
	ConnectedTime time.Duration
}

var (
	phyRe     = regexp.MustCompile(`^phy#(\d+)`)
	ifaceRe   = regexp.MustCompile(`^\s*Interface\s+(\S+)`)
	ifindexRe = regexp.MustCompile(`^\s*ifindex\s+(\d+)`)
	addrRe    = regexp.MustCompile(`^\s*addr\s+([0-9a-fA-F:]{17})`)
	typeRe    = regexp.MustCompile(`^\s*type\s+(\S+)`)
	ssidRe    = regexp.MustCompile(`^\s*ssid\s+(.+)`)
	channelRe = regexp.MustCompile(`channel\s+(\d+)\s+\((\d+)\s+MHz\)`)

	wiphyRe = regexp.MustCompile(`^Wiphy\s+phy(\d+)`)
	// A combination entry groups interface types in braces, e.g.
	// "#{ managed } <= 1, #{ AP, P2P-client } <= 1". The radio supports
	// simultaneous AP+managed operation when one line mentions both.
	managedComboRe = regexp.MustCompile(`(?i)#\{[^}]*\bmanaged\b[^}]*\}`)
	apComboRe      = regexp.MustCompile(`(?i)#\{[^}]*\bap\b[^}]*\}`)

	stationRe  = regexp.MustCompile(`^Station\s+([0-9a-fA-F:]{17})`)
	signalRe   = regexp.MustCompile(`^\s*signal:\s+(-?\d+)`)
	connTimeRe = regexp.MustCompile(`^\s*connected time:\s+(\d+)\s+seconds`)
)

// ParseDev parses `iw dev` output into the devices it reports, in output
// order. Unnamed non-netdev entries (e.g. P2P management devices) are
// skipped because they never carry an Interface line.
func ParseDev(output string) []Device {
	var devices []Device
	phy := -1
	var cur *Device

	for _, line := range strings.Split(output, "\n") {
		if m := phyRe.FindStringSubmatch(line); m != nil {
			phy, _ = strconv.Atoi(m[1])
			cur = nil
			continue
		}
		if m := ifaceRe.FindStringSubmatch(line); m != nil {
			devices = append(devices, Device{Name: m[1], PhyIndex: phy})
			cur = &devices[len(devices)-1]
			continue
		}
		if cur == nil {
			continue
		}
		switch {
		case ifindexRe.MatchString(line):
			cur.IfIndex, _ = strconv.Atoi(ifindexRe.FindStringSubmatch(line)[1])
		case addrRe.MatchString(line):
			cur.MAC = strings.ToLower(addrRe.FindStringSubmatch(line)[1])
		case typeRe.MatchString(line):
			cur.Type = typeRe.FindStringSubmatch(line)[1]
		case ssidRe.MatchString(line):
			cur.SSID = strings.TrimSpace(ssidRe.FindStringSubmatch(line)[1])
		case channelRe.MatchString(line):
			m := channelRe.FindStringSubmatch(line)
			cur.Channel, _ = strconv.Atoi(m[1])
			cur.FrequencyMHz, _ = strconv.Atoi(m[2])
		}
	}

	return devices
}

// ParseList parses `iw list` output into the radios it reports, keyed by
// phy index. Only the "valid interface combinations" section of each
// Wiphy block is interpreted; the section runs until the next
// non-indented line (in practice the next Wiphy block).
func ParseList(output string) map[int]*Phy {
	phys := make(map[int]*Phy)
	var cur *Phy
	inCombinations := false

	for _, line := range strings.Split(output, "\n") {
		if m := wiphyRe.FindStringSubmatch(line); m != nil {
			idx, _ := strconv.Atoi(m[1])
			cur = &Phy{Index: idx}
			phys[idx] = cur
			inCombinations = false
			continue
		}
		if cur == nil {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			// Non-indented line ends the current block.
			inCombinations = false
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), "valid interface combinations") {
			inCombinations = true
			continue
		}
		if !inCombinations || !strings.Contains(trimmed, "#{") {
			continue
		}
		cur.Combinations = append(cur.Combinations, trimmed)
		if managedComboRe.MatchString(trimmed) && apComboRe.MatchString(trimmed) {
			cur.SupportsAPManaged = true
		}
	}

	return phys
}

// ParseStationDump parses `iw dev <if> station dump` output into the
// associated stations it reports.
func ParseStationDump(output string) []Station {
	var stations []Station
	var cur *Station

	for _, line := range strings.Split(output, "\n") {
		if m := stationRe.FindStringSubmatch(line); m != nil {
			stations = append(stations, Station{MAC: strings.ToLower(m[1])})
			cur = &stations[len(stations)-1]
			continue
		}
		if cur == nil {
			continue
		}
		if m := signalRe.FindStringSubmatch(line); m != nil {
			cur.SignalDBm, _ = strconv.Atoi(m[1])
			continue
		}
		if m := connTimeRe.FindStringSubmatch(line); m != nil {
			secs, _ := strconv.Atoi(m[1])
			cur.ConnectedTime = time.Duration(secs) * time.Second
		}
	}

	return stations
}

// FreqToChannel maps a frequency in MHz to its Wi-Fi channel number using
// the standard 2.4 GHz and 5 GHz tables. Returns 0 for frequencies outside
// both bands (including 0, reported for unassociated interfaces).
func FreqToChannel(freqMHz int) int {
	switch {
	case freqMHz == 2484:
		return 14
	case freqMHz > 2407 && freqMHz < 2484:
		return (freqMHz - 2407) / 5
	case freqMHz > 5000 && freqMHz < 5900:
		return (freqMHz - 5000) / 5
	default:
		return 0
	}
}
