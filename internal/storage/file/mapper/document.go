package mapper

import (
	"fmt"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/record"
)

// OrderMapper переводит record.Order ↔ domain.Order.
type OrderMapper struct{}

func (OrderMapper) ToEntity(rec *record.Order) Outcome[domain.Order] {
	if rec == nil {
		return Rejected[domain.Order]("order record is absent")
	}
	if rec.ID == nil {
		return Rejected[domain.Order]("order id is required")
	}
	if rec.CustomerID == nil {
		return Rejected[domain.Order]("order %d: customer_id is required", *rec.ID)
	}
	if rec.CreatedAt == nil {
		return Rejected[domain.Order]("order %d: created_at is required", *rec.ID)
	}
	if len(rec.Items) == 0 {
		return Rejected[domain.Order]("order %d: items must not be empty", *rec.ID)
	}
	items, reason := itemsFromRecord(rec.Items)
	if reason != "" {
		return Rejected[domain.Order]("order %d: %s", *rec.ID, reason)
	}

	order, err := domain.NewOrder(*rec.ID, *rec.CustomerID, *rec.CreatedAt, items)
	if err != nil {
		return Rejected[domain.Order]("order %d: %s", *rec.ID, flatten(err))
	}
	return Accepted(order)
}

func (OrderMapper) ToRecord(entity *domain.Order) Outcome[*record.Order] {
	if entity == nil {
		return Rejected[*record.Order]("order is absent")
	}
	o, err := domain.NewOrder(entity.ID, entity.CustomerID, entity.CreatedAt, entity.Items)
	if err != nil {
		return Rejected[*record.Order]("order %d: %s", entity.ID, flatten(err))
	}
	return Accepted(&record.Order{
		ID:         record.Ptr(o.ID),
		CustomerID: record.Ptr(o.CustomerID),
		CreatedAt:  record.Ptr(o.CreatedAt),
		Items:      itemsToRecord(o.Items),
	})
}

// BasketMapper переводит record.Basket ↔ domain.Basket.
type BasketMapper struct{}

func (BasketMapper) ToEntity(rec *record.Basket) Outcome[domain.Basket] {
	if rec == nil {
		return Rejected[domain.Basket]("basket record is absent")
	}
	if rec.ID == nil {
		return Rejected[domain.Basket]("basket id is required")
	}
	if rec.CustomerID == nil {
		return Rejected[domain.Basket]("basket %d: customer_id is required", *rec.ID)
	}
	items, reason := itemsFromRecord(rec.Items)
	if reason != "" {
		return Rejected[domain.Basket]("basket %d: %s", *rec.ID, reason)
	}

	basket, err := domain.NewBasket(*rec.ID, *rec.CustomerID, items)
	if err != nil {
		return Rejected[domain.Basket]("basket %d: %s", *rec.ID, flatten(err))
	}
	return Accepted(basket)
}

func (BasketMapper) ToRecord(entity *domain.Basket) Outcome[*record.Basket] {
	if entity == nil {
		return Rejected[*record.Basket]("basket is absent")
	}
	b, err := domain.NewBasket(entity.ID, entity.CustomerID, entity.Items)
	if err != nil {
		return Rejected[*record.Basket]("basket %d: %s", entity.ID, flatten(err))
	}
	return Accepted(&record.Basket{
		ID:         record.Ptr(b.ID),
		CustomerID: record.Ptr(b.CustomerID),
		Items:      itemsToRecord(b.Items),
	})
}

// CustomerMapper переводит record.Customer ↔ domain.Customer.
type CustomerMapper struct{}

func (CustomerMapper) ToEntity(rec *record.Customer) Outcome[domain.Customer] {
	if rec == nil {
		return Rejected[domain.Customer]("customer record is absent")
	}
	if rec.ID == nil {
		return Rejected[domain.Customer]("customer id is required")
	}
	if rec.Name == nil {
		return Rejected[domain.Customer]("customer %d: name is required", *rec.ID)
	}
	c, err := domain.NewCustomer(*rec.ID, *rec.Name)
	if err != nil {
		return Rejected[domain.Customer]("customer %d: %s", *rec.ID, flatten(err))
	}
	return Accepted(c)
}

func (CustomerMapper) ToRecord(entity *domain.Customer) Outcome[*record.Customer] {
	if entity == nil {
		return Rejected[*record.Customer]("customer is absent")
	}
	c, err := domain.NewCustomer(entity.ID, entity.Name)
	if err != nil {
		return Rejected[*record.Customer]("customer %d: %s", entity.ID, flatten(err))
	}
	return Accepted(&record.Customer{ID: record.Ptr(c.ID), Name: record.Ptr(c.Name)})
}

// ProductMapper переводит record.Product ↔ domain.Product.
type ProductMapper struct{}

func (ProductMapper) ToEntity(rec *record.Product) Outcome[domain.Product] {
	if rec == nil {
		return Rejected[domain.Product]("product record is absent")
	}
	if rec.ID == nil {
		return Rejected[domain.Product]("product id is required")
	}
	if rec.Name == nil {
		return Rejected[domain.Product]("product %d: name is required", *rec.ID)
	}
	p, err := domain.NewProduct(*rec.ID, *rec.Name)
	if err != nil {
		return Rejected[domain.Product]("product %d: %s", *rec.ID, flatten(err))
	}
	return Accepted(p)
}

func (ProductMapper) ToRecord(entity *domain.Product) Outcome[*record.Product] {
	if entity == nil {
		return Rejected[*record.Product]("product is absent")
	}
	p, err := domain.NewProduct(entity.ID, entity.Name)
	if err != nil {
		return Rejected[*record.Product]("product %d: %s", entity.ID, flatten(err))
	}
	return Accepted(&record.Product{ID: record.Ptr(p.ID), Name: record.Ptr(p.Name)})
}

// itemsFromRecord возвращает непустую причину, если позиции нельзя собрать.
func itemsFromRecord(recs []record.Item) (domain.Items, string) {
	items := make(domain.Items, len(recs))
	for i, it := range recs {
		if it.ProductID == nil {
			return nil, fmt.Sprintf("item %d: product_id is required", i)
		}
		if it.Qty == nil {
			return nil, fmt.Sprintf("item %d: qty is required", i)
		}
		if _, dup := items[*it.ProductID]; dup {
			return nil, fmt.Sprintf("item %d: duplicate product_id %d", i, *it.ProductID)
		}
		items[*it.ProductID] = *it.Qty
	}
	return items, ""
}

// itemsToRecord упорядочивает позиции по товару, чтобы файл не менялся от перезаписи к перезаписи.
func itemsToRecord(items domain.Items) []record.Item {
	out := make([]record.Item, 0, items.Len())
	for _, productID := range items.ProductIDs() {
		out = append(out, record.Item{
			ProductID: record.Ptr(productID),
			Qty:       record.Ptr(items.Qty(productID)),
		})
	}
	return out
}

var (
	_ Mapper[record.Order, domain.Order]       = OrderMapper{}
	_ Mapper[record.Basket, domain.Basket]     = BasketMapper{}
	_ Mapper[record.Customer, domain.Customer] = CustomerMapper{}
	_ Mapper[record.Product, domain.Product]   = ProductMapper{}
)
