package domain

import (
	"errors"
	"time"
)

// Order — оформленный клиентом заказ с позициями.
type Order struct {
	ID         int64
	CustomerID int64
	// CreatedAt обязателен: заказ без момента создания считается повреждённым.
	CreatedAt time.Time
	Items     Items
}

// NewOrder собирает заказ и проверяет его инварианты.
func NewOrder(id, customerID int64, createdAt time.Time, items Items) (Order, error) {
	o := Order{
		ID:         id,
		CustomerID: customerID,
		CreatedAt:  createdAt,
		Items:      items.Clone(),
	}
	if errs := o.ValidateInvariants(); len(errs) != 0 {
		return Order{}, errors.Join(errs...)
	}
	return o, nil
}

// EntityID возвращает идентификатор заказа.
func (o Order) EntityID() int64 { return o.ID }

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o Order) ValidateInvariants() []error {
	var errs []error

	if !validID(o.ID) {
		errs = append(errs, ErrIDOutOfRange)
	}
	if !validID(o.CustomerID) {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.CreatedAt.IsZero() {
		errs = append(errs, ErrCreatedAtRequired)
	}
	if o.Items.Len() == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	errs = append(errs, o.Items.validate()...)

	return errs
}

// Clone возвращает копию заказа с независимым набором позиций.
func (o Order) Clone() Order {
	o.Items = o.Items.Clone()
	return o
}

// Equal сравнивает заказы по всем полям, включая позиции.
func (o Order) Equal(other Order) bool {
	return o.ID == other.ID &&
		o.CustomerID == other.CustomerID &&
		o.CreatedAt.Equal(other.CreatedAt) &&
		o.Items.Equal(other.Items)
}

// Basket — корзина клиента; в отличие от заказа может быть пустой.
type Basket struct {
	ID         int64
	CustomerID int64
	Items      Items
}

// NewBasket собирает корзину и проверяет её инварианты.
func NewBasket(id, customerID int64, items Items) (Basket, error) {
	b := Basket{
		ID:         id,
		CustomerID: customerID,
		Items:      items.Clone(),
	}
	if errs := b.ValidateInvariants(); len(errs) != 0 {
		return Basket{}, errors.Join(errs...)
	}
	return b, nil
}

// EntityID возвращает идентификатор корзины.
func (b Basket) EntityID() int64 { return b.ID }

// ValidateInvariants проверяет инварианты корзины.
func (b Basket) ValidateInvariants() []error {
	var errs []error

	if !validID(b.ID) {
		errs = append(errs, ErrIDOutOfRange)
	}
	if !validID(b.CustomerID) {
		errs = append(errs, ErrCustomerRequired)
	}
	errs = append(errs, b.Items.validate()...)

	return errs
}

// Clone возвращает копию корзины с независимым набором позиций.
func (b Basket) Clone() Basket {
	b.Items = b.Items.Clone()
	return b
}

// Equal сравнивает корзины по всем полям.
func (b Basket) Equal(other Basket) bool {
	return b.ID == other.ID &&
		b.CustomerID == other.CustomerID &&
		b.Items.Equal(other.Items)
}
