package net

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_spatialboard._tcp"

// Advertise announces the ingress on the local network.
func Advertise(instance string, port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	info := []string{"path=" + EventsPath}
	service, err := mdns.NewMDNSService(instance, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse lists boards advertised on the local network, reporting each as a
// websocket URL.
func Browse(timeout time.Duration, found func(url string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("ws://%s:%d%s", e.AddrV4.String(), e.Port, eventsPath(e.InfoFields)))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mdns lookup: %w", err)
	}
	return nil
}

func eventsPath(fields []string) string {
	for _, f := range fields {
		if p, ok := strings.CutPrefix(f, "path="); ok && p != "" {
			return p
		}
	}
	return EventsPath
}
