// Package strategy defines the ordered set of methods used to locate the
// ping-pong backend and resolves each of them to a candidate endpoint:
//
//   - FullyQualifiedDNS: <service>.<namespace>.svc.cluster.local
//   - NamespacedDNS: <service>.<namespace>
//   - ClusterIPLookup: the Service's cluster IP, asked from the control plane
//   - PodIPLookup: the IP of the first pod matching the label selector
//
// DNS strategies only build a host name; whether it is reachable is decided
// by the fetch attempt that follows. Lookup strategies delegate to an
// orchestration query and degrade to "no endpoint" on any failure.
package strategy
