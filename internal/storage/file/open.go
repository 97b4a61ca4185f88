package file

import (
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/codec"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/mapper"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/record"
)

// ErrUnsupportedFormat — вид сущности не умеет храниться в запрошенном формате.
var ErrUnsupportedFormat = errors.New("unsupported storage format")

// Имена корневых элементов XML-файлов.
const (
	xmlRootOrders    = "orders"
	xmlRootBaskets   = "baskets"
	xmlRootCustomers = "customers"
	xmlRootProducts  = "products"
)

// OpenOrders открывает хранилище заказов. CSV для заказов не поддерживается.
func OpenOrders(format codec.Format, path string, options ...Option) (domain.Repository[domain.Order], error) {
	switch format {
	case codec.FormatJSON:
		return New[record.Order, domain.Order](domain.KindOrder, path, codec.NewJSON[record.Order](), mapper.OrderMapper{}, options...), nil
	case codec.FormatXML:
		return New[record.Order, domain.Order](domain.KindOrder, path, codec.NewXML[record.Order](xmlRootOrders), mapper.OrderMapper{}, options...), nil
	default:
		return nil, unsupported(domain.KindOrder, format)
	}
}

// OpenBaskets открывает хранилище корзин. CSV для корзин не поддерживается.
func OpenBaskets(format codec.Format, path string, options ...Option) (domain.Repository[domain.Basket], error) {
	switch format {
	case codec.FormatJSON:
		return New[record.Basket, domain.Basket](domain.KindBasket, path, codec.NewJSON[record.Basket](), mapper.BasketMapper{}, options...), nil
	case codec.FormatXML:
		return New[record.Basket, domain.Basket](domain.KindBasket, path, codec.NewXML[record.Basket](xmlRootBaskets), mapper.BasketMapper{}, options...), nil
	default:
		return nil, unsupported(domain.KindBasket, format)
	}
}

// OpenCustomers открывает хранилище покупателей.
func OpenCustomers(format codec.Format, path string, options ...Option) (domain.Repository[domain.Customer], error) {
	switch format {
	case codec.FormatJSON:
		return New[record.Customer, domain.Customer](domain.KindCustomer, path, codec.NewJSON[record.Customer](), mapper.CustomerMapper{}, options...), nil
	case codec.FormatXML:
		return New[record.Customer, domain.Customer](domain.KindCustomer, path, codec.NewXML[record.Customer](xmlRootCustomers), mapper.CustomerMapper{}, options...), nil
	case codec.FormatCSV:
		return New[record.NamedRow, domain.Customer](domain.KindCustomer, path, codec.NewCSV(csvHeader(options)), mapper.NewCustomerRowMapper(), options...), nil
	default:
		return nil, unsupported(domain.KindCustomer, format)
	}
}

// OpenProducts открывает хранилище товаров.
func OpenProducts(format codec.Format, path string, options ...Option) (domain.Repository[domain.Product], error) {
	switch format {
	case codec.FormatJSON:
		return New[record.Product, domain.Product](domain.KindProduct, path, codec.NewJSON[record.Product](), mapper.ProductMapper{}, options...), nil
	case codec.FormatXML:
		return New[record.Product, domain.Product](domain.KindProduct, path, codec.NewXML[record.Product](xmlRootProducts), mapper.ProductMapper{}, options...), nil
	case codec.FormatCSV:
		return New[record.NamedRow, domain.Product](domain.KindProduct, path, codec.NewCSV(csvHeader(options)), mapper.NewProductRowMapper(), options...), nil
	default:
		return nil, unsupported(domain.KindProduct, format)
	}
}

// Supports сообщает, можно ли хранить вид сущности в формате.
func Supports(kind domain.Kind, format codec.Format) bool {
	switch format {
	case codec.FormatJSON, codec.FormatXML:
		return true
	case codec.FormatCSV:
		return kind == domain.KindCustomer || kind == domain.KindProduct
	default:
		return false
	}
}

func csvHeader(options []Option) string {
	var opts Options
	for _, option := range options {
		option(&opts)
	}
	if opts.CSVHeader == "" {
		return DefaultCSVHeader
	}
	return opts.CSVHeader
}

func unsupported(kind domain.Kind, format codec.Format) error {
	return fmt.Errorf("%w: %s in %q", ErrUnsupportedFormat, kind, format)
}
