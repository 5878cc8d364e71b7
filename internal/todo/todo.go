package todo

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyText is returned when a todo has no text.
var ErrEmptyText = errors.New("todo text is required")

type Todo struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Store is implemented by MemoryStore and RedisStore.
type Store interface {
	List(ctx context.Context) ([]Todo, error)
	// Create appends a todo whose id is the new length of the list.
	Create(ctx context.Context, text string) (Todo, error)
}

// Seed is the list a fresh store starts with.
func Seed() []Todo {
	return []Todo{
		{ID: 1, Text: "Finish the project"},
		{ID: 2, Text: "Learn Kubernetes"},
		{ID: 3, Text: "Schedule a meeting"},
	}
}

func normalize(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}
