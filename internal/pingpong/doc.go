// Package pingpong holds the in-memory pong counter served by the
// ping-pong role.
package pingpong
