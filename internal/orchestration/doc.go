// Package orchestration asks the cluster control plane for the IP address of
// a Service or of a pod matching a label selector.
//
// Two implementations are provided. Kubectl shells out to the kubectl binary
// and extracts a JSONPath result from its standard output; API talks to the
// Kubernetes API server through client-go. Both report failure as a false
// second return value, never as an error: an absent binary, a non-zero exit,
// a missing object or an unparseable answer are all just "no address".
package orchestration
