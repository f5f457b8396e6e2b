//go:build !linux

package stations

import "errors"

var errUnsupported = errors.New("neighbor table requires linux")

func readNeighbors(string) ([]neighborEntry, error) {
	return nil, errUnsupported
}
