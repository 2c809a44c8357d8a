// Package netutil detects the LAN address announced to the backend.
package netutil

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"slices"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// ErrNoAddress is returned when no usable IPv4 address is found
var ErrNoAddress = errors.New("no usable IPv4 address")

// LocalIP возвращает первый приватный IPv4 адрес активного интерфейса,
// который не является loopback
func LocalIP(ctx context.Context) (string, error) {
	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list interfaces: %w", err)
	}
	return pickAddress(ifaces)
}

func pickAddress(ifaces psnet.InterfaceStatList) (string, error) {
	var fallback string
	for _, iface := range ifaces {
		if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		for _, a := range iface.Addrs {
			prefix, err := netip.ParsePrefix(a.Addr)
			if err != nil {
				continue
			}
			addr := prefix.Addr()
			if !addr.Is4() || addr.IsLoopback() || addr.IsLinkLocalUnicast() {
				continue
			}
			if addr.IsPrivate() {
				return addr.String(), nil
			}
			if fallback == "" {
				fallback = addr.String()
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoAddress
}
