// Package soap implements the minimal SOAP 1.1 plumbing shared by the
// SOAP-speaking carrier adapters: envelope construction around
// pre-serialized XML fragments, the textual namespace-prefix rewrite the
// carrier gateways require, and fault extraction from response documents.
package soap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/delivro/shipcore/pkg/shipping"
	"github.com/delivro/shipcore/pkg/shipping/xmltree"
)

// EnvelopeNamespace is the SOAP 1.1 envelope namespace.
const EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// Envelope wraps a serialized body fragment (and an optional header
// fragment) in a SOAP 1.1 envelope. It implements shipping.Serializable so
// request builders can hand it straight to a proxy.
type Envelope struct {
	prefix     string
	header     string
	body       string
	namespaces map[string]string
}

var _ shipping.Serializable = Envelope{}

// Option customizes envelope construction.
type Option func(*Envelope)

// WithHeader adds a header child to the envelope.
func WithHeader(content shipping.Serializable) Option {
	return func(e *Envelope) {
		e.header = content.Serialize()
	}
}

// WithEnvelopePrefix overrides the envelope namespace prefix.
func WithEnvelopePrefix(prefix string) Option {
	return func(e *Envelope) {
		e.prefix = prefix
	}
}

// WithNamespace declares an extra xmlns binding on the envelope element, for
// the prefixes the header and body fragments use.
func WithNamespace(prefix, uri string) Option {
	return func(e *Envelope) {
		e.namespaces[prefix] = uri
	}
}

// CreateEnvelope builds a SOAP envelope around the given body content. The
// default envelope prefix is "tns".
func CreateEnvelope(body shipping.Serializable, opts ...Option) Envelope {
	envelope := Envelope{
		prefix:     "tns",
		body:       body.Serialize(),
		namespaces: map[string]string{},
	}
	for _, opt := range opts {
		opt(&envelope)
	}
	return envelope
}

// Serialize renders the envelope as an XML document fragment. Extra
// namespace bindings are emitted in prefix order so the output is stable.
func (e Envelope) Serialize() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<%s:Envelope xmlns:%s=%q", e.prefix, e.prefix, EnvelopeNamespace))
	prefixes := make([]string, 0, len(e.namespaces))
	for prefix := range e.namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		sb.WriteString(fmt.Sprintf(" xmlns:%s=%q", prefix, e.namespaces[prefix]))
	}
	sb.WriteString(">")

	if e.header != "" {
		sb.WriteString(fmt.Sprintf("<%s:Header>%s</%s:Header>", e.prefix, e.header, e.prefix))
	}
	sb.WriteString(fmt.Sprintf("<%s:Body>%s</%s:Body>", e.prefix, e.body, e.prefix))
	sb.WriteString(fmt.Sprintf("</%s:Envelope>", e.prefix))

	return sb.String()
}

// CleanNamespaces rewrites the namespace prefix of the header and body
// children in an already-serialized envelope. Gateways that insist on
// specific child prefixes get them here, after serialization, through four
// targeted tag replacements; the rest of the document is left alone.
// Prefix arguments include their trailing colon ("upss:").
func CleanNamespaces(envelope, envelopePrefix, bodyChildName, headerChildName, headerChildPrefix, bodyChildPrefix string) string {
	cleaned := strings.ReplaceAll(envelope,
		"<"+envelopePrefix+headerChildName,
		"<"+headerChildPrefix+headerChildName)
	cleaned = strings.ReplaceAll(cleaned,
		"</"+envelopePrefix+headerChildName,
		"</"+headerChildPrefix+headerChildName)
	cleaned = strings.ReplaceAll(cleaned,
		"<"+envelopePrefix+bodyChildName,
		"<"+bodyChildPrefix+bodyChildName)
	cleaned = strings.ReplaceAll(cleaned,
		"</"+envelopePrefix+bodyChildName,
		"</"+bodyChildPrefix+bodyChildName)
	return cleaned
}

// ExtractFault collects every SOAP fault in the response document, at any
// depth, as carrier messages. An empty slice means no fault was present.
func ExtractFault(root *xmltree.Element, identity shipping.Identity) []shipping.Message {
	var messages []shipping.Message
	for _, fault := range root.FindAll("Fault") {
		messages = append(messages, shipping.Message{
			CarrierName: identity.CarrierName,
			CarrierID:   identity.CarrierID,
			Code:        fault.TextOf("faultcode"),
			Text:        fault.TextOf("faultstring"),
		})
	}
	return messages
}
