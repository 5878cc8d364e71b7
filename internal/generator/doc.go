// Package generator appends a timestamped random line to a shared status
// file at a fixed interval, and reads the latest line back for the status
// service.
package generator
