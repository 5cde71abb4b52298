package pave

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	truthy = regexp.MustCompile(`(?i)^(true|t|yes|y|1)$`)
	falsey = regexp.MustCompile(`(?i)^(false|f|no|n|0)$`)
)

// coercion carries what a coercer needs besides the raw value.
type coercion struct {
	typ  Type
	opts Options
	loc  *time.Location
}

type coerceFunc func(c coercion, value any) (any, error)

// coercers is the dispatch table from declared type to conversion.
var coercers = map[Type]coerceFunc{
	Integer:  coerceInteger,
	Float:    coerceFloat,
	String:   coerceString,
	Boolean:  coerceBoolean,
	Date:     coerceTime,
	DateTime: coerceTime,
	Time:     coerceTime,
	Decimal:  coerceDecimal,
	Array:    coerceArray,
	Hash:     coerceHash,
	UUID:     coerceUUID,
}

// nilOnEmpty lists the types for which blank text coerces to nil, so that
// empty HTML form fields read as absent.
var nilOnEmpty = map[Type]bool{
	Integer:  true,
	Float:    true,
	Decimal:  true,
	Date:     true,
	DateTime: true,
	Time:     true,
	UUID:     true,
}

// Coerce converts value to typ. Times are parsed in UTC.
//
// Conversion failures wrap ErrTypeMismatch.
func Coerce(value any, typ Type, opts Options) (any, error) {
	return coerce(value, typ, opts, time.UTC)
}

func coerce(value any, typ Type, opts Options, loc *time.Location) (any, error) {
	fn, ok := coercers[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}

	if value == nil {
		return nil, nil
	}

	// Identity fast path
	if reflect.TypeOf(value) == typ.goType() {
		return value, nil
	}

	if b, ok := value.([]byte); ok {
		value = string(b)
	}

	// Nested structures never reach a scalar coercer.
	switch rt := reflect.TypeOf(value); {
	case rt == UUIDType:
	case rt.Kind() == reflect.Slice, rt.Kind() == reflect.Array:
		if typ != Array {
			return nil, mismatch(value, typ, nil)
		}
	case rt.Kind() == reflect.Map:
		if typ != Hash {
			return nil, mismatch(value, typ, nil)
		}
	}

	if s, ok := value.(string); ok && nilOnEmpty[typ] && strings.TrimSpace(s) == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	return fn(coercion{typ: typ, opts: opts, loc: loc}, value)
}

func mismatch(value any, typ Type, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: '%v' to %s", ErrTypeMismatch, value, typ)
	}
	return fmt.Errorf("%w: '%v' to %s: %w", ErrTypeMismatch, value, typ, cause)
}

func coerceInteger(c coercion, value any) (any, error) {
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 0)
		if err != nil {
			return nil, mismatch(value, c.typ, err)
		}
		return int(n), nil
	case bool:
		return nil, mismatch(value, c.typ, nil)
	case float32, float64:
		f := reflect.ValueOf(v).Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= 1<<63 || f < math.MinInt64 {
			return nil, mismatch(value, c.typ, nil)
		}
		return int(f), nil
	case decimal.Decimal:
		return int(v.IntPart()), nil
	}

	n, err := cast.ToIntE(value)
	if err != nil {
		return nil, mismatch(value, c.typ, err)
	}
	return n, nil
}

func coerceFloat(c coercion, value any) (any, error) {
	switch v := value.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, mismatch(value, c.typ, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, mismatch(value, c.typ, nil)
		}
		return f, nil
	case bool:
		return nil, mismatch(value, c.typ, nil)
	case decimal.Decimal:
		f, _ := v.Float64()
		return f, nil
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, mismatch(value, c.typ, err)
	}
	return f, nil
}

func coerceString(c coercion, value any) (any, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, mismatch(value, c.typ, err)
	}
	return s, nil
}

func coerceBoolean(c coercion, value any) (any, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, mismatch(value, c.typ, err)
	}

	switch {
	case falsey.MatchString(s):
		return false, nil
	case truthy.MatchString(s):
		return true, nil
	default:
		return nil, mismatch(value, c.typ, nil)
	}
}

func coerceTime(c coercion, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, mismatch(value, c.typ, nil)
	}
	s = strings.TrimSpace(s)

	t, err := parseTime(s, c.opts.Layout, c.loc)
	if err != nil {
		return nil, mismatch(value, c.typ, err)
	}

	switch c.typ {
	case Date:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	case Time:
		return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
	default:
		return t, nil
	}
}

// parseTime uses layout when given, else the first default layout that
// accepts s.
func parseTime(s, layout string, loc *time.Location) (time.Time, error) {
	if layout != "" {
		return time.ParseInLocation(layout, s, loc)
	}

	var err error
	for _, l := range defaultTimeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(l, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func coerceDecimal(c coercion, value any) (any, error) {
	var (
		d   decimal.Decimal
		err error
	)

	if s, ok := value.(string); ok {
		stripped := strings.TrimSpace(strings.Map(func(r rune) rune {
			if strings.ContainsRune(currencyCutset, r) {
				return -1
			}
			return r
		}, s))

		d, err = decimal.NewFromString(stripped)
		if err != nil {
			return nil, mismatch(value, c.typ, err)
		}
	} else {
		var ok bool
		if _, isBool := value.(bool); isBool {
			return nil, mismatch(value, c.typ, nil)
		}
		if d, ok = toDecimal(value); !ok {
			return nil, mismatch(value, c.typ, nil)
		}
	}

	return roundSignificant(d, c.opts.precision()), nil
}

// roundSignificant keeps precision significant digits of d.
func roundSignificant(d decimal.Decimal, precision int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	// position of the most significant digit relative to the decimal point
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	magnitude := int32(digits) + d.Exponent()
	return d.Round(precision - magnitude)
}

func coerceArray(c coercion, value any) (any, error) {
	if s, ok := value.(string); ok {
		parts := splitText(s, c.opts.delimiter())
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	default:
		return nil, mismatch(value, c.typ, nil)
	}
}

// splitText splits s on delim and drops trailing empty parts, so "" gives
// no parts and "a,b," gives ["a", "b"].
func splitText(s, delim string) []string {
	parts := strings.Split(s, delim)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func coerceHash(c coercion, value any) (any, error) {
	if s, ok := value.(string); ok {
		sep := c.opts.separator()
		out := make(map[string]any)
		for _, pair := range splitText(s, c.opts.delimiter()) {
			kv := strings.SplitN(pair, sep, 2)
			if len(kv) != 2 {
				return nil, mismatch(value, c.typ, fmt.Errorf("pair %q lacks separator %q", pair, sep))
			}
			out[kv[0]] = kv[1]
		}
		return out, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, mismatch(value, c.typ, nil)
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := cast.ToStringE(iter.Key().Interface())
		if err != nil {
			return nil, mismatch(value, c.typ, err)
		}
		out[key] = iter.Value().Interface()
	}
	return out, nil
}

func coerceUUID(c coercion, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, mismatch(value, c.typ, nil)
	}

	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, mismatch(value, c.typ, err)
	}
	return id, nil
}
