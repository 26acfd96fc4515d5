// json.go provides envelope marshaling for the polymorphic node and element
// variants so an exported deck keeps each value's kind alongside its fields.
// The deck is export-only; there is no unmarshaling path.
package model

import "encoding/json"

func (s *Section) MarshalJSON() ([]byte, error) {
	type alias Section
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{s.Kind().String(), (*alias)(s)})
}

func (r *Row) MarshalJSON() ([]byte, error) {
	type alias Row
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{r.Kind().String(), (*alias)(r)})
}

func (c *Column) MarshalJSON() ([]byte, error) {
	type alias Column
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{c.Kind().String(), (*alias)(c)})
}

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{t.Kind().String(), (*alias)(t)})
}

func (h *Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{h.Kind().String(), (*alias)(h)})
}

func (l *List) MarshalJSON() ([]byte, error) {
	type alias List
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{l.Kind().String(), (*alias)(l)})
}

func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{t.Kind().String(), (*alias)(t)})
}

func (i *Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{i.Kind().String(), (*alias)(i)})
}

func (c *Code) MarshalJSON() ([]byte, error) {
	type alias Code
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{c.Kind().String(), (*alias)(c)})
}

func (q *Quote) MarshalJSON() ([]byte, error) {
	type alias Quote
	return json.Marshal(struct {
		Kind string `json:"kind"`
		*alias
	}{q.Kind().String(), (*alias)(q)})
}
