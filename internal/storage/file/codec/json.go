package codec

import (
	"encoding/json"
	"io"
	"os"
)

// JSONCodec хранит записи как массив объектов верхнего уровня.
type JSONCodec[R any] struct{}

// NewJSON возвращает JSON-кодек для записей типа R.
func NewJSON[R any]() JSONCodec[R] {
	return JSONCodec[R]{}
}

// Encode пишет массив записей с отступами.
func (JSONCodec[R]) Encode(path string, records []*R) error {
	if records == nil {
		records = []*R{}
	}
	err := writeFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	})
	if err != nil {
		return ioError("encode", path, err)
	}
	return nil
}

// Decode читает массив записей; элементы null остаются nil и отбраковываются маппером.
func (JSONCodec[R]) Decode(path string) ([]*R, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("decode", path, err)
	}

	var records []*R
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ioError("decode", path, err)
	}
	return records, nil
}

var _ Codec[struct{}] = JSONCodec[struct{}]{}
