package memory

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

var ErrAlreadyExists = errors.New("already exists")

// table es el mapa byID con lock que comparten todos los repos en memoria.
type table[T any] struct {
	mu       sync.RWMutex
	byID     map[string]T
	id       func(T) string
	less     func(a, b T) int
	notFound error
}

func newTable[T any](id func(T) string, less func(a, b T) int, notFound error) *table[T] {
	return &table[T]{
		byID:     make(map[string]T),
		id:       id,
		less:     less,
		notFound: notFound,
	}
}

func (t *table[T]) create(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	if strings.TrimSpace(id) == "" {
		return errors.New("id required")
	}
	if _, exists := t.byID[id]; exists {
		return ErrAlreadyExists
	}
	t.byID[id] = v
	return nil
}

func (t *table[T]) update(v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(v)
	if _, exists := t.byID[id]; !exists {
		return t.notFound
	}
	t.byID[id] = v
	return nil
}

func (t *table[T]) delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; !exists {
		return t.notFound
	}
	delete(t.byID, id)
	return nil
}

func (t *table[T]) get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, t.notFound
	}
	return v, nil
}

// list devuelve una copia ordenada; el caller puede mutarla sin tocar el store.
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.byID))
	for _, v := range t.byID {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := t.less(a, b); c != 0 {
			return c
		}
		return strings.Compare(t.id(a), t.id(b))
	})
	return out
}
