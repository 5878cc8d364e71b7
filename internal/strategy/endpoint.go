package strategy

import (
	"net"
	"net/url"
	"strconv"
)

// Endpoint is a resolved host/port pair. It is produced fresh for every
// attempt and never cached.
type Endpoint struct {
	Host string
	Port int
}

// Address returns host:port, bracketing IPv6 hosts.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL builds the plain-HTTP URL of path on this endpoint.
func (e Endpoint) URL(path string) *url.URL {
	return &url.URL{
		Scheme: "http",
		Host:   e.Address(),
		Path:   path,
	}
}

func (e Endpoint) String() string {
	return e.Address()
}
