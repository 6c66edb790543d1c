package docpress

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// FormatHint marks a Value for locale-aware formatting at interpolation time.
type FormatHint int

const (
	HintNone FormatHint = iota
	HintCurrency
	HintDate
)

// Value is a tagged union over the data types a template context can hold.
// The zero Value is Absent, the resolver's explicit "no value here" result.
type Value struct {
	kind ValueKind
	hint FormatHint
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
	t    time.Time
}

// Absent is the resolver result for a path with no value. It is distinct
// from Null: Null is a value the caller explicitly supplied.
var Absent = Value{kind: KindAbsent}

// Null returns the explicit null value.
func Null() Value { return Value{kind: KindNull} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list Value preserving element order.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map returns a map Value over the given fields.
func Map(fields map[string]Value) Value { return Value{kind: KindMap, m: fields} }

// Currency returns a numeric Value that interpolates through the currency
// formatter instead of plain stringification.
func Currency(amount float64) Value {
	return Value{kind: KindNumber, num: amount, hint: HintCurrency}
}

// Date returns a Value that interpolates through the date formatter for the
// active locale.
func Date(t time.Time) Value {
	return Value{kind: KindString, str: t.Format(time.RFC3339), t: t, hint: HintDate}
}

// FromGo converts native Go data into a Value tree. Maps and slices are
// converted recursively; unknown types fall back to their fmt representation.
func FromGo(v interface{}) Value {
	if v == nil {
		return Null()
	}
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case time.Time:
		return Date(x)
	case []Value:
		return List(x...)
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromGo(item)
		}
		return List(items...)
	case []string:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = String(item)
		}
		return List(items...)
	case []int:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = Number(float64(item))
		}
		return List(items...)
	case []float64:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = Number(item)
		}
		return List(items...)
	case []bool:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = Bool(item)
		}
		return List(items...)
	case []map[string]interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromGo(item)
		}
		return List(items...)
	case map[string]interface{}:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fields[k] = FromGo(item)
		}
		return Map(fields)
	case map[string]Value:
		return Map(x)
	case TemplateData:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fields[k] = FromGo(item)
		}
		return Map(fields)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Hint returns the formatting hint attached at construction time.
func (v Value) Hint() FormatHint { return v.hint }

// IsAbsent reports whether the value is the resolver's Absent result.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the string payload; empty unless Kind is KindString.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload; zero unless Kind is KindNumber.
func (v Value) Num() float64 { return v.num }

// BoolVal returns the boolean payload; false unless Kind is KindBool.
func (v Value) BoolVal() bool { return v.b }

// Items returns the list payload; nil unless Kind is KindList.
func (v Value) Items() []Value { return v.list }

// Len returns the element count for lists and maps, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Field returns the named field of a map Value, or Absent.
func (v Value) Field(name string) Value {
	if v.kind != KindMap {
		return Absent
	}
	f, ok := v.m[name]
	if !ok {
		return Absent
	}
	return f
}

// Index returns the i-th element of a list Value, or Absent when out of
// range or not a list.
func (v Value) Index(i int) Value {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Absent
	}
	return v.list[i]
}

// Time returns the time payload of a date-hinted Value.
func (v Value) Time() (time.Time, bool) {
	if v.hint != HintDate {
		return time.Time{}, false
	}
	return v.t, true
}

// Truthy reports conditional truth: Absent, Null, false, numeric zero, and
// the empty string are falsy. Lists and maps are truthy even when empty;
// presence of the key is what the conditional tests.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindAbsent, KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// Stringify renders the value as plain text with no locale formatting.
// Absent and Null render as the empty string, never as "null".
func (v Value) Stringify() string {
	switch v.kind {
	case KindAbsent, KindNull:
		return ""
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Stringify()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + v.m[k].Stringify()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// formatNumber renders integers without a decimal point and keeps a compact
// representation for everything else.
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
