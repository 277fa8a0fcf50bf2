//go:build linux

package transport

import (
	"net"
	"syscall"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

// resolveSockaddr resolves host and service to a socket address and the
// matching address family.
func resolveSockaddr(host, service string) (syscall.Sockaddr, int, error) {
	if host == "" {
		return nil, 0, httperrors.NewTransportError(httperrors.DnsFailure, errEmptyHost)
	}

	tcpAddr, err := net.ResolveTCPAddr("tcp", net.JoinHostPort(host, service))
	if err != nil {
		return nil, 0, httperrors.NewTransportError(httperrors.DnsFailure, err)
	}

	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		sa4 := &syscall.SockaddrInet4{Port: tcpAddr.Port}
		copy(sa4.Addr[:], ip4)
		return sa4, syscall.AF_INET, nil
	}
	sa6 := &syscall.SockaddrInet6{Port: tcpAddr.Port}
	copy(sa6.Addr[:], tcpAddr.IP.To16())
	return sa6, syscall.AF_INET6, nil
}
