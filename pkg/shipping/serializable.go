package shipping

import (
	"fmt"

	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// Serializable is a pending carrier wire payload paired with its own
// serialization function. Mappers return one from every Create*Request;
// transports call Serialize exactly once when the request goes on the wire.
type Serializable interface {
	Serialize() string
}

// Wire pairs a typed carrier wire object with its serializer. Tests and
// transports that know the concrete carrier can recover the wire value.
type Wire[T any] struct {
	value     T
	serialize func(T) string
}

// NewSerializable wraps a wire value and its serializer. A nil serializer
// falls back to fmt.Sprint, which covers bare-string payloads such as a
// pickup confirmation number.
func NewSerializable[T any](value T, serialize func(T) string) *Wire[T] {
	return &Wire[T]{value: value, serialize: serialize}
}

// Value returns the underlying wire object.
func (w *Wire[T]) Value() T {
	return w.value
}

// Serialize produces the on-the-wire text for the payload.
func (w *Wire[T]) Serialize() string {
	if w.serialize == nil {
		return fmt.Sprint(w.value)
	}
	return w.serialize(w.value)
}

// Deserializable pairs a raw, pre-parsed carrier response tree with its
// origin metadata. Parsers only ever query the tree; no byte-level XML
// handling happens past this point.
type Deserializable struct {
	Identity  Identity
	Operation Capability
	Root      *xmltree.Element
}

// NewDeserializable builds a response wrapper for the given origin.
func NewDeserializable(id Identity, op Capability, root *xmltree.Element) *Deserializable {
	return &Deserializable{Identity: id, Operation: op, Root: root}
}
