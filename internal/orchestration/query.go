package orchestration

import "context"

// Query looks up backend addresses in the cluster.
type Query interface {
	// ServiceIP returns the cluster IP of the named Service.
	ServiceIP(ctx context.Context, namespace, service string) (string, bool)
	// PodIP returns the IP of a pod matching selector.
	PodIP(ctx context.Context, namespace, selector string) (string, bool)
}
