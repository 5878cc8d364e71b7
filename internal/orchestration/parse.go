package orchestration

import (
	"net"
	"strings"
)

// ParseIP extracts a single IP address from command output. Surrounding
// whitespace and the quotes left behind by templated JSONPath output are
// removed. Anything that is not exactly one IP address is rejected.
func ParseIP(out string) (string, bool) {
	s := strings.TrimSpace(out)
	s = strings.Trim(s, `'"`)
	s = strings.TrimSpace(s)

	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return "", false
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return "", false
	}

	return ip.String(), true
}
