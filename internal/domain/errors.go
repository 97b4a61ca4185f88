package domain

import "errors"

var (
	// Ошибка идентификатора вне диапазона [1, MaxID].
	ErrIDOutOfRange = errors.New("id is out of range")
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующего момента создания заказа.
	ErrCreatedAtRequired = errors.New("created_at is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка некорректного идентификатора товара в позиции.
	ErrItemProductInvalid = errors.New("item product_id is out of range")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка формата имени покупателя.
	ErrCustomerNameInvalid = errors.New("customer name does not match pattern")
	// Ошибка формата названия товара.
	ErrProductNameInvalid = errors.New("product name does not match pattern")

	// ErrNotFound возвращается, если сущности с таким идентификатором нет в хранилище.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidArgument — вызывающий передал отсутствующий идентификатор или сущность.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorage — изменение применено в памяти, но файл переписать не удалось.
	// Сущность следует считать возможно не сохранённой на диске.
	ErrStorage = errors.New("storage failure")
)

// IsStorageFailure проверяет, что ошибка означает неподтверждённую запись на диск.
func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorage)
}
