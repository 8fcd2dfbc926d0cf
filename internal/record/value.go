// Package record models typed rows: a closed Value variant, the literal
// codec, schema columns, and row serialization.
package record

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single typed cell. The zero Value is NULL.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Text  string
	Blob  []byte
}

func Null() Value            { return Value{} }
func NewInt(v int64) Value   { return Value{Kind: KindInt, Int: v} }
func NewFloat(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func NewBool(v bool) Value   { return Value{Kind: KindBool, Bool: v} }
func NewText(v string) Value { return Value{Kind: KindText, Text: v} }
func NewBlob(v []byte) Value { return Value{Kind: KindBlob, Blob: v} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String returns the canonical textual form. It is what index entry keys and
// primary-key row ids are built from, so it must be stable.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindText:
		return v.Text
	case KindBlob:
		return base64.StdEncoding.EncodeToString(v.Blob)
	default:
		return ""
	}
}

// numeric reports the value as float64 when it is INT or FLOAT.
func (v Value) numeric() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Compare orders two values. ok is false when the kinds are not comparable
// (e.g. text vs int); INT and FLOAT compare numerically across kinds.
// NULL compares equal to NULL and below everything else; ORDER BY applies its
// own nulls-last rule on top.
func Compare(a, b Value) (c int, ok bool) {
	if a.IsNull() || b.IsNull() {
		switch {
		case a.IsNull() && b.IsNull():
			return 0, true
		case a.IsNull():
			return -1, true
		default:
			return 1, true
		}
	}

	if af, aok := a.numeric(); aok {
		if bf, bok := b.numeric(); bok {
			if a.Kind == KindInt && b.Kind == KindInt {
				switch {
				case a.Int < b.Int:
					return -1, true
				case a.Int > b.Int:
					return 1, true
				default:
					return 0, true
				}
			}
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}

	if a.Kind != b.Kind {
		return 0, false
	}
	switch a.Kind {
	case KindBool:
		switch {
		case a.Bool == b.Bool:
			return 0, true
		case !a.Bool:
			return -1, true
		default:
			return 1, true
		}
	case KindText:
		return strings.Compare(a.Text, b.Text), true
	case KindBlob:
		return bytes.Compare(a.Blob, b.Blob), true
	default:
		return 0, false
	}
}

// Equal reports value equality under Compare semantics. Incomparable kinds
// are never equal.
func Equal(a, b Value) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// valueJSON is the wire form of one Value. Int and float travel as their
// canonical strings so 64-bit ints never round-trip through float64.
type valueJSON struct {
	T string `json:"t"`
	V string `json:"v"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(valueJSON{T: v.Kind.String(), V: v.String()})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*v = Null()
		return nil
	}
	var w valueJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.T {
	case "int":
		n, err := strconv.ParseInt(w.V, 10, 64)
		if err != nil {
			return fmt.Errorf("record: bad int value %q: %w", w.V, err)
		}
		*v = NewInt(n)
	case "float":
		f, err := strconv.ParseFloat(w.V, 64)
		if err != nil {
			return fmt.Errorf("record: bad float value %q: %w", w.V, err)
		}
		*v = NewFloat(f)
	case "bool":
		*v = NewBool(w.V == "true")
	case "text":
		*v = NewText(w.V)
	case "blob":
		b, err := base64.StdEncoding.DecodeString(w.V)
		if err != nil {
			return fmt.Errorf("record: bad blob value: %w", err)
		}
		*v = NewBlob(b)
	default:
		return fmt.Errorf("record: unknown value kind %q", w.T)
	}
	return nil
}
