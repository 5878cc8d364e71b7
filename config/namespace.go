package config

import (
	"os"
	"strings"
)

const (
	serviceAccountNamespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"
	DefaultNamespace            = "exercises"
)

// currentNamespace returns the pod's namespace when running in a cluster.
func currentNamespace() string {
	ns, err := os.ReadFile(serviceAccountNamespaceFile)
	if err != nil {
		return DefaultNamespace
	}

	if s := strings.TrimSpace(string(ns)); s != "" {
		return s
	}
	return DefaultNamespace
}
