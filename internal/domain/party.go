package domain

import (
	"errors"
	"regexp"
)

var (
	customerNamePattern = regexp.MustCompile(`^\p{L}[\p{L} '\-]{0,63}$`)
	// Запятая исключена: имя попадает в CSV без экранирования.
	productNamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .\-]{0,127}$`)
)

// Customer — покупатель.
type Customer struct {
	ID   int64
	Name string
}

// NewCustomer собирает покупателя и проверяет его инварианты.
func NewCustomer(id int64, name string) (Customer, error) {
	c := Customer{ID: id, Name: name}
	if errs := c.ValidateInvariants(); len(errs) != 0 {
		return Customer{}, errors.Join(errs...)
	}
	return c, nil
}

// EntityID возвращает идентификатор покупателя.
func (c Customer) EntityID() int64 { return c.ID }

// ValidateInvariants проверяет диапазон идентификатора и формат имени.
func (c Customer) ValidateInvariants() []error {
	var errs []error
	if !validID(c.ID) {
		errs = append(errs, ErrIDOutOfRange)
	}
	if !customerNamePattern.MatchString(c.Name) {
		errs = append(errs, ErrCustomerNameInvalid)
	}
	return errs
}

// Equal сравнивает покупателей по всем полям.
func (c Customer) Equal(other Customer) bool { return c == other }

// Product — товар каталога.
type Product struct {
	ID   int64
	Name string
}

// NewProduct собирает товар и проверяет его инварианты.
func NewProduct(id int64, name string) (Product, error) {
	p := Product{ID: id, Name: name}
	if errs := p.ValidateInvariants(); len(errs) != 0 {
		return Product{}, errors.Join(errs...)
	}
	return p, nil
}

// EntityID возвращает идентификатор товара.
func (p Product) EntityID() int64 { return p.ID }

// ValidateInvariants проверяет диапазон идентификатора и формат названия.
func (p Product) ValidateInvariants() []error {
	var errs []error
	if !validID(p.ID) {
		errs = append(errs, ErrIDOutOfRange)
	}
	if !productNamePattern.MatchString(p.Name) {
		errs = append(errs, ErrProductNameInvalid)
	}
	return errs
}

// Equal сравнивает товары по всем полям.
func (p Product) Equal(other Product) bool { return p == other }
