// Package handler implements the HTTP surfaces of each role: the log status
// page with the fetched pong count, the ping-pong counter and the todo
// backend. Routers are gorilla/mux; request logging is shared middleware.
package handler
