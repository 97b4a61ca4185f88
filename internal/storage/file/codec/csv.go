package codec

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/record"
)

// CSVCodec хранит строки id,name под фиксированной строкой заголовка.
// Значения не экранируются: домен не допускает запятых в именах.
type CSVCodec struct {
	header string
}

// NewCSV возвращает CSV-кодек с заголовком header (например "id,name").
func NewCSV(header string) CSVCodec {
	return CSVCodec{header: strings.TrimSpace(header)}
}

// Header возвращает строку заголовка.
func (c CSVCodec) Header() string { return c.header }

// Encode пишет заголовок и по строке на запись.
func (c CSVCodec) Encode(path string, records []*record.NamedRow) error {
	err := writeFile(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, c.header+"\n"); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		for _, rec := range records {
			if rec == nil {
				continue
			}
			if err := cw.Write(rec.Fields()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return ioError("encode", path, err)
	}
	return nil
}

// Decode проверяет заголовок и читает строки. Число колонок не проверяется:
// строки неверной ширины отбраковывает маппер, а не весь файл.
func (c CSVCodec) Decode(path string) ([]*record.NamedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("decode", path, err)
	}
	defer f.Close()

	// Заголовок сравнивается как строка: он и пишется в файл дословно.
	br := bufio.NewReader(f)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ioError("decode", path, err)
	}
	header := strings.TrimSpace(strings.TrimRight(line, "\r\n"))
	if header == "" && errors.Is(err, io.EOF) {
		return nil, ioError("decode", path, errors.New("missing header line"))
	}
	if header != c.header {
		return nil, ioError("decode", path, fmt.Errorf("unexpected header %q, want %q", header, c.header))
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []*record.NamedRow
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ioError("decode", path, err)
		}
		row := record.NamedRowFromFields(fields)
		rows = append(rows, &row)
	}
	return rows, nil
}

var _ Codec[record.NamedRow] = CSVCodec{}
