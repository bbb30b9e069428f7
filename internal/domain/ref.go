package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Meta carries the identity stamp returned by a store write.
type Meta struct {
	ID  string
	Rev string
}

// Doc is implemented by every persistable entity (pointer receivers).
type Doc interface {
	DocID() string
	Stamp(id, rev string)
}

// RefKind tags what a link-field entry decoded to.
type RefKind int

const (
	// RefInvalid marks an entry that was neither a document nor a usable id.
	RefInvalid RefKind = iota
	// RefID marks a bare identifier reference.
	RefID
	// RefDoc marks a full embedded document.
	RefDoc
)

// Ref is a link-field entry: either a full child document, a bare id, or
// an invalid value. The three-way shape of incoming JSON is decided once,
// here, at decode time; resolution code switches on Kind instead of
// re-probing the value.
type Ref[T any] struct {
	doc  *T
	id   string
	kind RefKind
	raw  json.RawMessage
}

// DocRef wraps a hydrated document.
func DocRef[T any](doc *T) Ref[T] {
	return Ref[T]{doc: doc, kind: RefDoc}
}

// IDRef wraps a bare identifier.
func IDRef[T any](id string) Ref[T] {
	return Ref[T]{id: id, kind: RefID}
}

func (r Ref[T]) Kind() RefKind { return r.kind }

// Doc returns the hydrated document, nil unless Kind is RefDoc.
func (r Ref[T]) Doc() *T { return r.doc }

// ID returns the bare identifier, empty unless Kind is RefID.
func (r Ref[T]) ID() string { return r.id }

// Raw returns the original payload of an invalid entry for error reporting.
func (r Ref[T]) Raw() json.RawMessage { return r.raw }

// WithDoc returns a hydrated copy of the ref pointing at doc.
func (r Ref[T]) WithDoc(doc *T) Ref[T] {
	r.doc = doc
	r.kind = RefDoc
	return r
}

// UnmarshalJSON decides the entry kind: object, string id, non-negative
// integer id, or invalid. Invalid entries do not fail the decode; they
// fail the batch later, at the linker boundary, with the raw value kept
// for the error message.
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		r.kind = RefInvalid
		r.raw = append(json.RawMessage(nil), b...)
		return nil
	}
	switch b[0] {
	case '{':
		doc := new(T)
		if err := json.Unmarshal(b, doc); err != nil {
			return err
		}
		r.doc = doc
		r.kind = RefDoc
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			r.kind = RefInvalid
			r.raw = append(json.RawMessage(nil), b...)
			return nil
		}
		r.id = s
		r.kind = RefID
	default:
		var n float64
		if err := json.Unmarshal(b, &n); err != nil || n < 0 || n != math.Trunc(n) {
			r.kind = RefInvalid
			r.raw = append(json.RawMessage(nil), b...)
			return nil
		}
		r.id = strconv.FormatFloat(n, 'f', -1, 64)
		r.kind = RefID
	}
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case RefDoc:
		return json.Marshal(r.doc)
	case RefID:
		return json.Marshal(r.id)
	default:
		if len(r.raw) > 0 {
			return append(json.RawMessage(nil), r.raw...), nil
		}
		return []byte("null"), nil
	}
}
