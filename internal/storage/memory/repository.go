package memory

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
)

// repositoryInMemory реализует Repository в памяти, без файла.
type repositoryInMemory[E domain.Entity] struct {
	mu      sync.RWMutex
	items   map[int64]E
	kind    domain.Kind
	startID int64
}

// NewRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewRepository[E domain.Entity](kind domain.Kind) domain.Repository[E] {
	return &repositoryInMemory[E]{
		items:   make(map[int64]E),
		kind:    kind,
		startID: kind.DefaultStartID(),
	}
}

// Read возвращает сущность или ErrNotFound, если её нет.
func (r *repositoryInMemory[E]) Read(id int64) (E, error) {
	var zero E
	if id == domain.NoID {
		return zero, fmt.Errorf("%w: %s id is absent", domain.ErrInvalidArgument, r.kind)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id]
	if !ok {
		return zero, fmt.Errorf("%s %d: %w", r.kind, id, domain.ErrNotFound)
	}
	return domain.Detach(entity), nil
}

// Save вставляет или заменяет сущность.
func (r *repositoryInMemory[E]) Save(entity E) error {
	id := entity.EntityID()
	if id == domain.NoID {
		return fmt.Errorf("%w: %s is absent", domain.ErrInvalidArgument, r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[id] = domain.Detach(entity)
	return nil
}

// Delete удаляет сущность; отсутствие ключа ошибкой не считается.
func (r *repositoryInMemory[E]) Delete(id int64) error {
	if id == domain.NoID {
		return fmt.Errorf("%w: %s id is absent", domain.ErrInvalidArgument, r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// NextAvailableID возвращает max(id)+1 или стартовый идентификатор вида.
func (r *repositoryInMemory[E]) NextAvailableID() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return r.startID
	}
	return slices.Max(slices.Collect(maps.Keys(r.items))) + 1
}

// List возвращает сущности по возрастанию идентификатора.
func (r *repositoryInMemory[E]) List() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := slices.Collect(maps.Keys(r.items))
	slices.Sort(ids)

	result := make([]E, 0, len(ids))
	for _, id := range ids {
		result = append(result, domain.Detach(r.items[id]))
	}
	return result
}

// Len возвращает количество сущностей.
func (r *repositoryInMemory[E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

var _ domain.Repository[domain.Order] = (*repositoryInMemory[domain.Order])(nil)
