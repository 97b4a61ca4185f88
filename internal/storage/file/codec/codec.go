// Package codec читает и пишет списки записей в файлы JSON, XML и CSV.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrIO — файл не найден, не разбирается в ожидаемом формате или не записан.
var ErrIO = errors.New("codec i/o error")

// Format задаёт формат файла хранилища.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

// Codec сериализует весь список записей в файл и обратно.
type Codec[R any] interface {
	// Encode полностью перезаписывает файл; при ошибке прежнее содержимое остаётся на месте.
	Encode(path string, records []*R) error
	// Decode читает все записи файла.
	Decode(path string) ([]*R, error)
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// writeFile пишет содержимое во временный файл рядом с path и атомарно
// переименовывает его, чтобы недописанный файл никогда не подменил исходный.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
