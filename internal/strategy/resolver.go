package strategy

import (
	"context"
	"net"
	"strings"

	"github.com/angeloszaimis/log-output/internal/orchestration"
)

const (
	// DefaultServicePort is the port the ping-pong Service exposes.
	DefaultServicePort = 1234

	// PodPort is the container port used when talking to a pod directly.
	// It differs from the Service port and is not configurable.
	PodPort = 8002

	clusterDomain = "svc.cluster.local"
)

// Target describes where the backend lives. It is read-only once a
// Resolver has been built from it.
type Target struct {
	Namespace     string
	Service       string
	LabelSelector string
	ServicePort   int
}

// Resolver turns a Strategy into a candidate Endpoint.
type Resolver struct {
	target Target
	query  orchestration.Query
}

// NewResolver returns a Resolver for target. query may be nil, in which
// case the lookup strategies never resolve.
func NewResolver(target Target, query orchestration.Query) *Resolver {
	if target.ServicePort == 0 {
		target.ServicePort = DefaultServicePort
	}

	return &Resolver{
		target: target,
		query:  query,
	}
}

// Target returns the resolver's target description.
func (r *Resolver) Target() Target {
	return r.target
}

// Resolve returns the endpoint for s, or false when s cannot produce one.
func (r *Resolver) Resolve(ctx context.Context, s Strategy) (Endpoint, bool) {
	switch s {
	case FullyQualifiedDNS:
		return r.fullyQualified()
	case NamespacedDNS:
		return r.namespaced()
	case ClusterIPLookup:
		return r.clusterIP(ctx)
	case PodIPLookup:
		return r.podIP(ctx)
	default:
		return Endpoint{}, false
	}
}

func (r *Resolver) fullyQualified() (Endpoint, bool) {
	if r.target.Service == "" || r.target.Namespace == "" {
		return Endpoint{}, false
	}

	host := strings.Join([]string{r.target.Service, r.target.Namespace, clusterDomain}, ".")
	return Endpoint{Host: host, Port: r.target.ServicePort}, true
}

func (r *Resolver) namespaced() (Endpoint, bool) {
	if r.target.Service == "" || r.target.Namespace == "" {
		return Endpoint{}, false
	}

	host := r.target.Service + "." + r.target.Namespace
	return Endpoint{Host: host, Port: r.target.ServicePort}, true
}

func (r *Resolver) clusterIP(ctx context.Context) (Endpoint, bool) {
	if r.query == nil || r.target.Service == "" {
		return Endpoint{}, false
	}

	ip, ok := r.query.ServiceIP(ctx, r.target.Namespace, r.target.Service)
	if !ok || net.ParseIP(ip) == nil {
		return Endpoint{}, false
	}

	return Endpoint{Host: ip, Port: r.target.ServicePort}, true
}

func (r *Resolver) podIP(ctx context.Context) (Endpoint, bool) {
	if r.query == nil || r.target.LabelSelector == "" {
		return Endpoint{}, false
	}

	ip, ok := r.query.PodIP(ctx, r.target.Namespace, r.target.LabelSelector)
	if !ok || net.ParseIP(ip) == nil {
		return Endpoint{}, false
	}

	return Endpoint{Host: ip, Port: PodPort}, true
}
