package todo

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	todos []Todo
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{todos: Seed()}
}

func (s *MemoryStore) List(ctx context.Context) ([]Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Todo(nil), s.todos...), nil
}

func (s *MemoryStore) Create(ctx context.Context, text string) (Todo, error) {
	text, err := normalize(text)
	if err != nil {
		return Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Todo{ID: len(s.todos) + 1, Text: text}
	s.todos = append(s.todos, t)
	return t, nil
}
