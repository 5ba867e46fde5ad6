package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_lessonboard._tcp"

// ErrNoServer means discovery finished without finding a storage server.
var ErrNoServer = errors.New("no storage server found")

// Advertise announces a storage server listening on port.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port,
		[]net.IP{firstIPv4()}, []string{"LessonBoard storage"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for a storage server and returns the first "host:port"
// found within timeout.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	errc := make(chan error, 1)
	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	go func() { errc <- mdns.Query(params) }()

	// The query keeps running until its timeout; drain it in the background.
	defer func() {
		go func() {
			for {
				select {
				case <-entries:
				case <-errc:
					return
				}
			}
		}()
	}()

	for {
		select {
		case e := <-entries:
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), nil
		case err := <-errc:
			// Put the result back for the drain goroutine.
			errc <- err
			if err != nil {
				return "", fmt.Errorf("mdns query: %w", err)
			}
			return "", ErrNoServer
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
