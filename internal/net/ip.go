package net

import (
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
)

// OutgoingIP finds the preferred local IP address devices should connect to.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route out; pick an interface address instead
		return localIPFallback()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func localIPFallback() string {
	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, address := range addrs {
			if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	log.Warn().Msg("no suitable local IP found, falling back to loopback")
	return "127.0.0.1"
}

// Port extracts the numeric port of a listen address such as ":8888".
func Port(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	port, err := net.LookupPort("tcp", p)
	if err != nil {
		return 0, fmt.Errorf("parse listen address %q: %w", addr, err)
	}
	return port, nil
}

// ShareURL is the websocket address printed for devices to connect to.
func ShareURL(listenAddr string) (string, error) {
	port, err := Port(listenAddr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ws://%s:%d%s", OutgoingIP(), port, EventsPath), nil
}
