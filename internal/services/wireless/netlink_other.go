//go:build !linux

package wireless

import "errors"

var errUnsupported = errors.New("link state requires linux")

func readLinkState(name string) (string, bool, error) {
	return "", false, errUnsupported
}
