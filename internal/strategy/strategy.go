package strategy

import (
	"fmt"
	"strings"
)

// Strategy is one method of locating the backend. The zero value is not a
// valid strategy.
type Strategy int

const (
	FullyQualifiedDNS Strategy = iota + 1
	NamespacedDNS
	ClusterIPLookup
	PodIPLookup
)

// order is the fixed priority of the fetch chain.
var order = []Strategy{
	FullyQualifiedDNS,
	NamespacedDNS,
	ClusterIPLookup,
	PodIPLookup,
}

// All returns every strategy in chain order. The slice is a copy.
func All() []Strategy {
	out := make([]Strategy, len(order))
	copy(out, order)
	return out
}

func (s Strategy) String() string {
	switch s {
	case FullyQualifiedDNS:
		return "fqdn"
	case NamespacedDNS:
		return "namespaced-dns"
	case ClusterIPLookup:
		return "cluster-ip"
	case PodIPLookup:
		return "pod-ip"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= FullyQualifiedDNS && s <= PodIPLookup
}

// Parse maps a strategy name as printed by String back to its value.
func Parse(name string) (Strategy, error) {
	for _, s := range order {
		if strings.EqualFold(s.String(), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}
