package locus

import (
	"fmt"
	"strconv"
)

// Kind enumerates the representations an attribute Value can hold.
type Kind uint8

const (
	// KindFloat64 holds a numeric value.
	KindFloat64 Kind = iota
	// KindString holds free text.  Numeric text can still be coerced with
	// Float64.
	KindString
	// KindBytes holds an opaque blob.  It never coerces to a number.
	KindBytes
)

// Value is a typed attribute value attached to a Locus or Term.  The zero
// Value is the number 0.
type Value struct {
	kind Kind
	num  float64
	str  string
	raw  []byte
}

// FloatValue returns a numeric Value.
func FloatValue(v float64) Value { return Value{kind: KindFloat64, num: v} }

// StringValue returns a text Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// BytesValue returns an opaque Value.  The slice is not copied.
func BytesValue(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// Kind returns the representation of the value.
func (v Value) Kind() Kind { return v.kind }

// Float64 coerces the value to a number.  Text parses via strconv; blobs and
// unparseable text are errors.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindFloat64:
		return v.num, nil
	case KindString:
		f, err := strconv.ParseFloat(v.str, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric attribute value %q", v.str)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("attribute value of kind bytes is not numeric")
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindFloat64:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	default:
		return fmt.Sprintf("%x", v.raw)
	}
}
