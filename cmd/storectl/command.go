package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/codec"
)

// command описывает операции CLI над хранилищем одного вида.
type command interface {
	open(format codec.Format, path string, options ...file.Option) error
	list(w io.Writer) error
	get(id int64, w io.Writer) error
	delete(id int64) error
	nextID() int64
	convert(format codec.Format, path string, options ...file.Option) (int, error)
}

// persister — хранилище, умеющее переписать файл без изменения данных.
type persister interface {
	Persist() error
}

type opener[E domain.Entity] func(format codec.Format, path string, options ...file.Option) (domain.Repository[E], error)

type kindCommand[E domain.Entity] struct {
	openRepo opener[E]
	repo     domain.Repository[E]
	logger   *log.Entry
}

func openCommand(kind domain.Kind, logger *log.Entry) (command, error) {
	logger = logger.WithField("kind", kind)
	switch kind {
	case domain.KindOrder:
		return &kindCommand[domain.Order]{openRepo: file.OpenOrders, logger: logger}, nil
	case domain.KindBasket:
		return &kindCommand[domain.Basket]{openRepo: file.OpenBaskets, logger: logger}, nil
	case domain.KindCustomer:
		return &kindCommand[domain.Customer]{openRepo: file.OpenCustomers, logger: logger}, nil
	case domain.KindProduct:
		return &kindCommand[domain.Product]{openRepo: file.OpenProducts, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", errUsage, kind)
	}
}

func (c *kindCommand[E]) open(format codec.Format, path string, options ...file.Option) error {
	repo, err := c.openRepo(format, path, options...)
	if err != nil {
		return err
	}
	c.repo = repo
	return nil
}

func (c *kindCommand[E]) list(w io.Writer) error {
	for _, entity := range c.repo.List() {
		if err := printJSON(w, entity); err != nil {
			return err
		}
	}
	return nil
}

func (c *kindCommand[E]) get(id int64, w io.Writer) error {
	entity, err := c.repo.Read(id)
	if err != nil {
		return err
	}
	return printJSON(w, entity)
}

func (c *kindCommand[E]) delete(id int64) error {
	return c.repo.Delete(id)
}

func (c *kindCommand[E]) nextID() int64 {
	return c.repo.NextAvailableID()
}

// convert сохраняет все сущности в новое хранилище. Каждая запись
// переписывает целевой файл, поэтому ошибка оставляет его согласованным.
func (c *kindCommand[E]) convert(format codec.Format, path string, options ...file.Option) (int, error) {
	target, err := c.openRepo(format, path, options...)
	if err != nil {
		return 0, err
	}

	entities := c.repo.List()
	for _, entity := range entities {
		if err := target.Save(entity); err != nil {
			return 0, fmt.Errorf("save %d: %w", entity.EntityID(), err)
		}
	}
	// Save пишет файл только при изменении; пустой источник даёт пустой целевой файл.
	if len(entities) == 0 {
		p, ok := target.(persister)
		if !ok {
			return 0, fmt.Errorf("%s store cannot be written explicitly", format)
		}
		if err := p.Persist(); err != nil {
			return 0, err
		}
	}
	c.logger.WithFields(log.Fields{
		"to":       format,
		"out":      path,
		"entities": len(entities),
	}).Debug("converted")
	return len(entities), nil
}
