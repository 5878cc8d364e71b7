// Package config loads the settings shared by every role of the binary from
// a YAML file and environment variables: server and logging settings, how
// the status service locates the ping-pong backend, and the settings of the
// ping-pong, log generator and todo roles.
package config
