// ABOUTME: Dial guard refusing connections to loopback, private and link-local addresses
// ABOUTME: Backs the client used to fetch URLs that come from form input

package standard

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"

	"mediacheck/core/interfaces"
)

// ErrBlockedAddress is returned when a connection would reach a non-public address.
var ErrBlockedAddress = errors.New("destination address is not public")

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// NewPublicHTTPClient creates a client that only connects to public unicast addresses.
// The check runs on the resolved address of every dial, redirects included, so a hostname
// that resolves to an internal address is refused as well. Proxies from the environment
// are ignored.
func NewPublicHTTPClient(timeout time.Duration, logger interfaces.Logger) *StandardHTTPClient {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   publicOnlyControl,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return newClient(timeout, transport, logger)
}

// IsPublicAddr reports whether addr may be dialed by the public client.
func IsPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast():
		return false
	}
	return !sharedAddressSpace.Contains(addr)
}

func publicOnlyControl(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil || !IsPublicAddr(addr) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}
