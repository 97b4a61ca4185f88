// Package record описывает плоские формы сущностей для файлового хранения.
// Записи не содержат правил валидации: отсутствующие поля остаются nil,
// а решение о пригодности принимает маппер.
package record

import (
	"encoding/xml"
	"time"
)

// Item — позиция заказа или корзины.
type Item struct {
	ProductID *int64 `json:"product_id" xml:"product_id"`
	Qty       *int32 `json:"qty" xml:"qty"`
}

// Order — документная запись заказа (JSON-объект или XML-элемент <order>).
type Order struct {
	XMLName    xml.Name   `json:"-" xml:"order"`
	ID         *int64     `json:"id" xml:"id"`
	CustomerID *int64     `json:"customer_id" xml:"customer_id"`
	CreatedAt  *time.Time `json:"created_at" xml:"created_at"`
	Items      []Item     `json:"items" xml:"items>item"`
}

// Basket описывает документную запись корзины.
type Basket struct {
	XMLName    xml.Name `json:"-" xml:"basket"`
	ID         *int64   `json:"id" xml:"id"`
	CustomerID *int64   `json:"customer_id" xml:"customer_id"`
	Items      []Item   `json:"items" xml:"items>item"`
}

// Customer описывает документную запись покупателя.
type Customer struct {
	XMLName xml.Name `json:"-" xml:"customer"`
	ID      *int64   `json:"id" xml:"id"`
	Name    *string  `json:"name" xml:"name"`
}

// Product описывает документную запись товара.
type Product struct {
	XMLName xml.Name `json:"-" xml:"product"`
	ID      *int64   `json:"id" xml:"id"`
	Name    *string  `json:"name" xml:"name"`
}

// NamedRow — строка CSV вида id,name. Поля хранятся как есть,
// разбор идентификатора выполняет маппер.
type NamedRow struct {
	ID   string
	Name string
	// Columns хранит, сколько колонок было в исходной строке; 0 для строк, собранных в коде.
	Columns int
}

// Fields возвращает значения в порядке колонок.
func (r NamedRow) Fields() []string {
	return []string{r.ID, r.Name}
}

// NamedRowFromFields собирает строку из колонок CSV.
func NamedRowFromFields(fields []string) NamedRow {
	r := NamedRow{Columns: len(fields)}
	if len(fields) > 0 {
		r.ID = fields[0]
	}
	if len(fields) > 1 {
		r.Name = fields[1]
	}
	return r
}

// Ptr возвращает указатель на копию значения; удобно для сборки записей.
func Ptr[T any](v T) *T {
	return &v
}
