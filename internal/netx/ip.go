// Package netx resolves the address other machines on the LAN can use to
// reach this process.
package netx

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrNoAddress is returned when no usable non-loopback IPv4 address exists.
var ErrNoAddress = errors.New("no non-loopback address found")

// probeTarget is only used to pick a route; UDP dial sends no packets.
const probeTarget = "192.0.2.1:9"

var (
	dialUDP        = func() (net.Conn, error) { return net.Dial("udp4", probeTarget) }
	interfaceAddrs = net.InterfaceAddrs
)

// LocalIP returns the preferred outbound IPv4 address.
// It falls back to scanning interface addresses when no default route exists.
func LocalIP() (net.IP, error) {
	if conn, err := dialUDP(); err == nil {
		defer conn.Close()
		if ua, ok := conn.LocalAddr().(*net.UDPAddr); ok && usable(ua.IP) {
			return ua.IP, nil
		}
	}

	addrs, err := interfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("list interface addresses: %w", err)
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if ok && usable(ipn.IP) {
			return ipn.IP.To4(), nil
		}
	}

	return nil, ErrNoAddress
}

func usable(ip net.IP) bool {
	return ip != nil && ip.To4() != nil && !ip.IsLoopback() && !ip.IsUnspecified()
}

// BaseURL builds "http://host:port" where port is taken from listenAddr
// (e.g. ":9999" or "0.0.0.0:9999").
func BaseURL(host, listenAddr string) (string, error) {
	_, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "", fmt.Errorf("parse listen address %q: %w", listenAddr, err)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("parse listen port %q: %w", port, err)
	}
	return "http://" + net.JoinHostPort(host, port), nil
}
