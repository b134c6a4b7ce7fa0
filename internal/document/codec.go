package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

// Encode writes the pyramid as indented JSON followed by a newline.
func Encode(w io.Writer, p pyramid.Pyramid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ToDocument(p))
}

// Marshal is Encode into a byte slice.
func Marshal(p pyramid.Pyramid) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads exactly one JSON document and rebuilds the pyramid.
// Numbers inside meta are kept as json.Number.
func Decode(r io.Reader) (pyramid.Pyramid, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc *Document
	if err := dec.Decode(&doc); err != nil {
		return pyramid.Pyramid{}, invalidJSON(err)
	}
	if doc == nil {
		return pyramid.Pyramid{}, invalidJSON(errors.New("document is null"))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return pyramid.Pyramid{}, invalidJSON(errors.New("unexpected data after document"))
	}
	return FromDocument(*doc)
}

func invalidJSON(err error) error {
	return &domain.Error{
		Op:   "document.decode",
		Kind: domain.KindMalformedDocument,
		Msg:  "invalid pyramid document",
		Err:  err,
	}
}
