package domain

// NoID — идентификатор, означающий «значение не передано».
const NoID int64 = 0

// MaxID — верхняя граница допустимых идентификаторов.
const MaxID int64 = 999_999_999

func validID(id int64) bool {
	return id > NoID && id <= MaxID
}

// Kind — вид сущности; определяет имя файла, метки метрик и стартовый идентификатор.
type Kind string

const (
	KindOrder    Kind = "order"
	KindBasket   Kind = "basket"
	KindCustomer Kind = "customer"
	KindProduct  Kind = "product"
)

// Kinds перечисляет все поддерживаемые виды сущностей.
func Kinds() []Kind {
	return []Kind{KindOrder, KindBasket, KindCustomer, KindProduct}
}

// DefaultStartID возвращает идентификатор, выдаваемый первым в пустом хранилище.
func (k Kind) DefaultStartID() int64 {
	switch k {
	case KindCustomer, KindProduct:
		return 100_000_000
	default:
		return 1000
	}
}

// Entity описывает сущность с числовым идентификатором.
type Entity interface {
	EntityID() int64
}

// Detach возвращает копию сущности, не разделяющую изменяемых полей
// с оригиналом. Сущности без таких полей возвращаются как есть.
func Detach[E Entity](entity E) E {
	if c, ok := any(entity).(interface{ Clone() E }); ok {
		return c.Clone()
	}
	return entity
}

// Repository описывает требования к хранилищу сущностей одного вида.
type Repository[E Entity] interface {
	// Read возвращает сущность или ErrNotFound; NoID даёт ErrInvalidArgument.
	Read(id int64) (E, error)
	// Save вставляет или заменяет сущность по её идентификатору.
	// Хранилище держит собственную копию: дальнейшие изменения у вызывающего её не затрагивают.
	// ErrStorage означает, что кэш уже изменён, а запись на диск не подтверждена.
	Save(entity E) error
	// Delete удаляет сущность; отсутствие ключа ошибкой не считается.
	Delete(id int64) error
	// NextAvailableID возвращает max(id)+1 или стартовый идентификатор вида.
	// Если в хранилище уже есть MaxID, результат равен MaxID+1 и не проходит
	// проверку конструкторов: вызывающий получит ErrIDOutOfRange при создании сущности.
	NextAvailableID() int64
	// List возвращает все сущности по возрастанию идентификатора.
	List() []E
}
