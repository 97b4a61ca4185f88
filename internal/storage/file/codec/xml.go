package codec

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// xmlDocument оборачивает записи корневым элементом. Имя дочернего элемента
// берётся из поля XMLName типа записи.
type xmlDocument[R any] struct {
	XMLName xml.Name
	Records []*R `xml:",any"`
}

// XMLCodec хранит записи как дочерние элементы именованного корня.
type XMLCodec[R any] struct {
	root string
}

// NewXML возвращает XML-кодек с корневым элементом root.
func NewXML[R any](root string) XMLCodec[R] {
	return XMLCodec[R]{root: root}
}

// Encode пишет документ с XML-заголовком.
func (c XMLCodec[R]) Encode(path string, records []*R) error {
	doc := xmlDocument[R]{
		XMLName: xml.Name{Local: c.root},
		Records: records,
	}
	err := writeFile(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	})
	if err != nil {
		return ioError("encode", path, err)
	}
	return nil
}

// Decode читает документ и проверяет имя корня.
func (c XMLCodec[R]) Decode(path string) ([]*R, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("decode", path, err)
	}

	var doc xmlDocument[R]
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, ioError("decode", path, err)
	}
	if doc.XMLName.Local != c.root {
		return nil, ioError("decode", path, fmt.Errorf("unexpected root element <%s>, want <%s>", doc.XMLName.Local, c.root))
	}
	return doc.Records, nil
}

var _ Codec[struct{}] = XMLCodec[struct{}]{}
