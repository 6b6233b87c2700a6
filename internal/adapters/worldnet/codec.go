package worldnet

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/kevin07696/worldnet-gateway/pkg/encoding"
	pkgerrors "github.com/kevin07696/worldnet-gateway/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Element is a decoded XML element. Names are lower-cased.
type Element struct {
	Name     string
	Text     string
	Children []*Element
}

// Child returns the first child called name, or nil
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	name = strings.ToLower(name)
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsLeaf reports whether the element has no child elements
func (e *Element) IsLeaf() bool {
	return len(e.Children) == 0
}

// Record flattens the leaf children of e into an ordered record.
// Nested elements are skipped; the protocol's responses are flat.
func (e *Element) Record() *Fields {
	f := NewFields()
	if e == nil {
		return f
	}
	for _, c := range e.Children {
		if c.IsLeaf() {
			f.Set(c.Name, c.Text)
		}
	}
	return f
}

// Encode serializes fields as <root><NAME>value</NAME>...</root>, one child per
// field in record order, preceded by the XML declaration
func Encode(fields *Fields, root string) ([]byte, error) {
	buf := encoding.GetBuffer()
	defer encoding.PutBuffer(buf)

	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(buf)
	enc.Indent("", "  ")

	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeToken(start); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", root, err)
	}
	for pair := fields.m.Oldest(); pair != nil; pair = pair.Next() {
		el := xml.StartElement{Name: xml.Name{Local: pair.Key}}
		if err := enc.EncodeElement(pair.Value, el); err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", pair.Key, err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", root, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush %s: %w", root, err)
	}

	return encoding.Bytes(buf), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses a gateway response into an element tree rooted at the document element.
// Tag names are lower-cased. When siblings share a name only the first is kept, so a
// field always decodes to a single value.
func Decode(data []byte) (*Element, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
		texts []*strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.NewParseError("invalid XML", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: strings.ToLower(t.Name.Local)}
			if len(stack) == 0 {
				if root != nil {
					return nil, pkgerrors.NewParseError("multiple root elements", nil)
				}
				root = el
			} else if parent := stack[len(stack)-1]; parent.Child(el.Name) == nil {
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			el := stack[len(stack)-1]
			text := texts[len(texts)-1].String()
			if el.IsLeaf() {
				el.Text = text
			} else {
				el.Text = strings.TrimSpace(text)
			}
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]

		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, pkgerrors.NewParseError("text outside of root element", nil)
			}
		}
	}

	if root == nil {
		return nil, pkgerrors.NewParseError("no root element", nil)
	}
	return root, nil
}
