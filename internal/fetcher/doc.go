// Package fetcher obtains the ping-pong counter from a backend whose address
// is not reliably known.
//
// A Fetcher walks the resolution strategies in their fixed order. For each
// one it resolves a candidate endpoint and, if that works, issues a single
// bounded GET against it. The first strategy that yields a value ends the
// chain. When every strategy fails the configured default (0) is returned:
// callers of Count never see an error, only a number.
//
// Strategies are never run concurrently and never retried within one chain,
// so a chain ends after at most one attempt timeout per strategy. A caller
// deadline on the context stops the strategy in flight and returns the
// default right away.
package fetcher
