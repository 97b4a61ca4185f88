package domain

import (
	"maps"
	"slices"
)

// Items — позиции заказа или корзины: идентификатор товара → количество.
// Значение не изменяется после сборки сущности, поэтому конструкторы хранят копию.
type Items map[int64]int32

// Len возвращает количество различных товаров.
func (i Items) Len() int { return len(i) }

// Qty возвращает количество товара или 0, если его нет.
func (i Items) Qty(productID int64) int32 { return i[productID] }

// ProductIDs возвращает идентификаторы товаров по возрастанию.
func (i Items) ProductIDs() []int64 {
	ids := slices.Collect(maps.Keys(i))
	slices.Sort(ids)
	return ids
}

// Clone возвращает независимую копию позиций.
func (i Items) Clone() Items {
	if i == nil {
		return Items{}
	}
	return maps.Clone(i)
}

// Equal считает nil и пустой набор равными.
func (i Items) Equal(other Items) bool {
	return maps.Equal(i, other)
}

func (i Items) validate() []error {
	var errs []error
	for productID, qty := range i {
		if !validID(productID) {
			errs = append(errs, ErrItemProductInvalid)
		}
		if qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}
	return errs
}
