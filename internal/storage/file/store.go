// Package file реализует хранилище сущностей поверх плоского файла:
// файл целиком читается в кэш при создании и целиком переписывается
// после каждого изменения.
package file

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/metrics"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/codec"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/mapper"
)

// Store хранит сущности одного вида в памяти и дублирует их в файл.
// Кэш — источник истины, файл — производный снимок. Один экземпляр
// должен единолично владеть своим файлом.
type Store[R any, E domain.Entity] struct {
	mu      sync.RWMutex
	cache   map[int64]E
	lastErr error

	kind    domain.Kind
	path    string
	startID int64
	codec   codec.Codec[R]
	mapper  mapper.Mapper[R, E]
	logger  *log.Entry
	metrics *metrics.StoreMetrics
}

// New создаёт хранилище и загружает в кэш содержимое path.
// Отсутствующий или повреждённый файл не считается ошибкой: хранилище стартует пустым.
func New[R any, E domain.Entity](kind domain.Kind, path string, c codec.Codec[R], m mapper.Mapper[R, E], options ...Option) *Store[R, E] {
	var opts Options
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "file-store")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewStoreMetrics()
	}
	if opts.StartID <= domain.NoID {
		opts.StartID = kind.DefaultStartID()
	}

	s := &Store[R, E]{
		cache:   make(map[int64]E),
		kind:    kind,
		path:    path,
		startID: opts.StartID,
		codec:   c,
		mapper:  m,
		logger:  logger.WithFields(log.Fields{"kind": kind, "path": path}),
		metrics: opts.Metrics,
	}
	s.load()
	return s
}

func (s *Store[R, E]) load() {
	records, err := s.codec.Decode(s.path)
	if err != nil {
		s.metrics.RecordLoadFailure(string(s.kind))
		s.metrics.SetCached(string(s.kind), 0)
		s.logger.WithError(err).Warn("data file is missing or unreadable, starting with empty cache")
		return
	}

	rejected := 0
	for i, rec := range records {
		out := s.mapper.ToEntity(rec)
		entity, ok := out.Get()
		if !ok {
			rejected++
			s.logger.WithFields(log.Fields{
				"index":  i,
				"reason": out.Reason(),
			}).Warn("record rejected")
			continue
		}
		id := entity.EntityID()
		if _, dup := s.cache[id]; dup {
			s.logger.WithField("id", id).Warn("duplicate id in data file, later record wins")
		}
		s.cache[id] = entity
	}

	accepted := len(records) - rejected
	s.metrics.RecordLoaded(string(s.kind), accepted)
	s.metrics.RecordRejected(string(s.kind), metrics.StageLoad, rejected)
	s.metrics.SetCached(string(s.kind), len(s.cache))
	s.logger.WithFields(log.Fields{
		"accepted": accepted,
		"rejected": rejected,
	}).Info("data file loaded")
}

// Read возвращает сущность из кэша.
func (s *Store[R, E]) Read(id int64) (E, error) {
	var zero E
	if id == domain.NoID {
		return zero, fmt.Errorf("%w: %s id is absent", domain.ErrInvalidArgument, s.kind)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.cache[id]
	if !ok {
		return zero, fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
	}
	return domain.Detach(entity), nil
}

// Save вставляет или заменяет сущность и переписывает файл.
// Если запись на диск не удалась, кэш не откатывается и возвращается ErrStorage.
func (s *Store[R, E]) Save(entity E) error {
	id := entity.EntityID()
	if id == domain.NoID {
		return fmt.Errorf("%w: %s is absent", domain.ErrInvalidArgument, s.kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[id] = domain.Detach(entity)
	return s.persistLocked()
}

// Delete удаляет сущность (если она есть) и переписывает файл.
func (s *Store[R, E]) Delete(id int64) error {
	if id == domain.NoID {
		return fmt.Errorf("%w: %s id is absent", domain.ErrInvalidArgument, s.kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, id)
	return s.persistLocked()
}

// Persist переписывает файл текущим содержимым кэша, даже пустым.
func (s *Store[R, E]) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// NextAvailableID возвращает max(id)+1 или стартовый идентификатор для пустого кэша.
// Счётчик не хранится отдельно: после удаления максимального id он будет выдан снова.
func (s *Store[R, E]) NextAvailableID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.cache) == 0 {
		return s.startID
	}
	return slices.Max(slices.Collect(maps.Keys(s.cache))) + 1
}

// List возвращает снимок кэша по возрастанию идентификатора.
func (s *Store[R, E]) List() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, 0, len(s.cache))
	for _, id := range s.sortedIDsLocked() {
		out = append(out, domain.Detach(s.cache[id]))
	}
	return out
}

// Len возвращает количество сущностей в кэше.
func (s *Store[R, E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// LastPersistError возвращает ошибку последней перезаписи файла или nil.
func (s *Store[R, E]) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Kind возвращает вид хранимых сущностей.
func (s *Store[R, E]) Kind() domain.Kind { return s.kind }

// Path возвращает путь к файлу данных.
func (s *Store[R, E]) Path() string { return s.path }

func (s *Store[R, E]) sortedIDsLocked() []int64 {
	ids := slices.Collect(maps.Keys(s.cache))
	slices.Sort(ids)
	return ids
}

// persistLocked переписывает файл целиком из снимка кэша. Вызывается под s.mu.
func (s *Store[R, E]) persistLocked() error {
	start := time.Now()

	records := make([]*R, 0, len(s.cache))
	dropped := 0
	for _, id := range s.sortedIDsLocked() {
		entity := s.cache[id]
		out := s.mapper.ToRecord(&entity)
		rec, ok := out.Get()
		if !ok {
			dropped++
			s.logger.WithFields(log.Fields{
				"id":     id,
				"reason": out.Reason(),
			}).Warn("entity is not representable, skipped in data file")
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		s.metrics.RecordRejected(string(s.kind), metrics.StagePersist, dropped)
	}

	err := s.codec.Encode(s.path, records)
	s.lastErr = err
	s.metrics.RecordPersist(string(s.kind), time.Since(start), err)
	s.metrics.SetCached(string(s.kind), len(s.cache))
	if err != nil {
		s.logger.WithError(err).Error("data file rewrite failed, cache and file diverged")
		return fmt.Errorf("%w: %s: %w", domain.ErrStorage, s.kind, err)
	}

	s.logger.WithField("records", len(records)).Debug("data file rewritten")
	return nil
}

var _ domain.Repository[domain.Order] = (*Store[struct{}, domain.Order])(nil)
