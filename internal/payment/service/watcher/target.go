package watcher

import (
	"errors"
	"strings"
)

// Target is an address under watch with the order it belongs to.
type Target struct {
	Address  string
	OrderRef string
}

// ParseTarget reads "address" or "address:order_ref".
func ParseTarget(raw string) (Target, error) {
	address, orderRef, _ := strings.Cut(strings.TrimSpace(raw), ":")
	address = strings.TrimSpace(address)
	if address == "" {
		return Target{}, errors.New("watch target has no address")
	}
	return Target{Address: address, OrderRef: strings.TrimSpace(orderRef)}, nil
}
