// Package todo stores the todo list served by the todo backend, either in
// memory or in a Redis list.
package todo
