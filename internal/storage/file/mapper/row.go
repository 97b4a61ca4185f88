package mapper

import (
	"strconv"
	"strings"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/record"
)

// namedRowMapper выполняет общий перевод строк id,name для покупателей и товаров.
type namedRowMapper[E domain.Entity] struct {
	kind      domain.Kind
	construct func(id int64, name string) (E, error)
	fields    func(E) (int64, string)
}

func (m namedRowMapper[E]) ToEntity(rec *record.NamedRow) Outcome[E] {
	if rec == nil {
		return Rejected[E]("%s row is absent", m.kind)
	}
	if rec.Columns != 0 && rec.Columns != 2 {
		return Rejected[E]("%s row: expected 2 columns, got %d", m.kind, rec.Columns)
	}
	raw := strings.TrimSpace(rec.ID)
	if raw == "" {
		return Rejected[E]("%s row: id is required", m.kind)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Rejected[E]("%s row: id %q is not a number", m.kind, raw)
	}
	e, err := m.construct(id, rec.Name)
	if err != nil {
		return Rejected[E]("%s %d: %s", m.kind, id, flatten(err))
	}
	return Accepted(e)
}

func (m namedRowMapper[E]) ToRecord(entity *E) Outcome[*record.NamedRow] {
	if entity == nil {
		return Rejected[*record.NamedRow]("%s is absent", m.kind)
	}
	id, name := m.fields(*entity)
	if _, err := m.construct(id, name); err != nil {
		return Rejected[*record.NamedRow]("%s %d: %s", m.kind, id, flatten(err))
	}
	return Accepted(&record.NamedRow{ID: strconv.FormatInt(id, 10), Name: name})
}

// NewCustomerRowMapper возвращает маппер CSV-строк покупателей.
func NewCustomerRowMapper() Mapper[record.NamedRow, domain.Customer] {
	return namedRowMapper[domain.Customer]{
		kind:      domain.KindCustomer,
		construct: domain.NewCustomer,
		fields:    func(c domain.Customer) (int64, string) { return c.ID, c.Name },
	}
}

// NewProductRowMapper возвращает маппер CSV-строк товаров.
func NewProductRowMapper() Mapper[record.NamedRow, domain.Product] {
	return namedRowMapper[domain.Product]{
		kind:      domain.KindProduct,
		construct: domain.NewProduct,
		fields:    func(p domain.Product) (int64, string) { return p.ID, p.Name },
	}
}
