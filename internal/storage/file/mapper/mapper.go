// Package mapper переводит записи в сущности и обратно без паник и ошибок:
// всё, что нельзя перевести, возвращается как Rejected с причиной.
package mapper

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
)

// Outcome — результат перевода: принятое значение либо причина отказа.
type Outcome[T any] struct {
	value    T
	reason   string
	accepted bool
}

// Accepted оборачивает успешно переведённое значение.
func Accepted[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, accepted: true}
}

// Rejected описывает отказ человекочитаемой причиной.
func Rejected[T any](format string, args ...any) Outcome[T] {
	return Outcome[T]{reason: fmt.Sprintf(format, args...)}
}

// Get возвращает значение и признак успеха.
func (o Outcome[T]) Get() (T, bool) { return o.value, o.accepted }

// IsAccepted сообщает, принято ли значение.
func (o Outcome[T]) IsAccepted() bool { return o.accepted }

// Reason возвращает причину отказа; для принятых значений пусто.
func (o Outcome[T]) Reason() string { return o.reason }

// Mapper переводит запись формата R в сущность E и обратно.
type Mapper[R any, E domain.Entity] interface {
	ToEntity(rec *R) Outcome[E]
	ToRecord(entity *E) Outcome[*R]
}

// flatten склеивает ошибки из errors.Join в одну строку для лога.
func flatten(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
