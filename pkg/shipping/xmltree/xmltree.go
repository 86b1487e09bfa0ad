// Package xmltree provides a navigable, already-tokenized XML tree that
// carrier response parsers query by tag name. Adapters never touch raw
// bytes: transports (or tests) build the tree once with Parse, and all
// downstream extraction works on Elements.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Element is a single node of a parsed wire tree.
type Element struct {
	Tag      string // local name, namespace stripped
	Attrs    []xml.Attr
	Text     string
	Children []*Element
	parent   *Element
}

// Parse tokenizes an XML document into an Element tree. Namespace prefixes
// are discarded; queries match on local names only, which keeps extraction
// independent of whatever prefix scheme a carrier happens to emit.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Element
	var cur *Element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local, Attrs: t.Attr, parent: cur}
			if cur != nil {
				cur.Children = append(cur.Children, el)
			} else if root == nil {
				root = el
			}
			cur = el
		case xml.EndElement:
			if cur != nil {
				cur = cur.parent
			}
		case xml.CharData:
			if cur != nil {
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, &xml.SyntaxError{Msg: "no root element"}
	}
	return root, nil
}

// MustParse is Parse for test fixtures; it panics on malformed input.
func MustParse(data string) *Element {
	el, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return el
}

// Find returns the first descendant (or the element itself) whose local tag
// name matches, in document order. Nil when absent; absent is a legitimate
// state for optional wire fields, never an error.
func (e *Element) Find(local string) *Element {
	if e == nil {
		return nil
	}
	if e.Tag == local {
		return e
	}
	for _, child := range e.Children {
		if found := child.Find(local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant (including the element itself) whose
// local tag name matches, regardless of position or depth.
func (e *Element) FindAll(local string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	if e.Tag == local {
		out = append(out, e)
	}
	for _, child := range e.Children {
		out = append(out, child.FindAll(local)...)
	}
	return out
}

// TextOf returns the trimmed text of the first matching descendant, or ""
// when the node is absent or empty.
func (e *Element) TextOf(local string) string {
	found := e.Find(local)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text)
}

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// DecodeInto reconstructs a strongly-typed wire record from the subtree
// rooted at e by re-serializing it and unmarshalling into v. Absent optional
// fields simply stay at their zero values.
func DecodeInto(e *Element, v interface{}) error {
	if e == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := encode(&buf, e); err != nil {
		return err
	}
	return xml.Unmarshal(buf.Bytes(), v)
}

func encode(buf *bytes.Buffer, e *Element) error {
	enc := xml.NewEncoder(buf)
	if err := encodeElement(enc, e); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}}
	for _, a := range e.Attrs {
		// xmlns declarations are prefix bookkeeping from the source
		// document; the re-serialized subtree is prefix-free.
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if text := strings.TrimSpace(e.Text); text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	for _, child := range e.Children {
		if err := encodeElement(enc, child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
