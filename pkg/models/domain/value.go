package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// ValueKind tags the type of a canonical cell value.
type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueString
	ValueNumber
	ValueDate
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueDate:
		return "date"
	default:
		return "missing"
	}
}

// Value is a typed cell resolved during normalization. Raw untyped cells
// never travel past the normalizer boundary.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	date time.Time
}

func Missing() Value              { return Value{} }
func StringValue(s string) Value  { return Value{kind: ValueString, str: s} }
func NumberValue(f float64) Value { return Value{kind: ValueNumber, num: f} }
func DateValue(t time.Time) Value { return Value{kind: ValueDate, date: t} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsMissing() bool { return v.kind == ValueMissing }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == ValueString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

func (v Value) AsDate() (time.Time, bool) {
	return v.date, v.kind == ValueDate
}

// Text renders the value for display, exports and group keys.
// Missing renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueString:
		return v.str == o.str
	case ValueNumber:
		return v.num == o.num
	case ValueDate:
		return v.date.Equal(o.date)
	default:
		return true
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueString:
		return json.Marshal(v.str)
	case ValueNumber:
		return json.Marshal(v.num)
	case ValueDate:
		return json.Marshal(v.date.Format("2006-01-02"))
	default:
		return []byte("null"), nil
	}
}
