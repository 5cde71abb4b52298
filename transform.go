package pave

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	ErrTransformUnsupported = errors.New("transform does not apply to value")
)

// Transform maps a coerced, non-nil value to its final form.
type Transform func(value any) (any, error)

// TransformFunc lifts an infallible function into a Transform.
func TransformFunc(fn func(value any) any) Transform {
	return func(value any) (any, error) {
		return fn(value), nil
	}
}

// TextTransform applies fn to string values and rejects everything else.
func TextTransform(name string, fn func(string) string) Transform {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s on %T", ErrTransformUnsupported, name, value)
		}
		return fn(s), nil
	}
}

// Built-in transforms.
var (
	Upcase     = TextTransform("upcase", strings.ToUpper)
	Downcase   = TextTransform("downcase", strings.ToLower)
	Capitalize = TextTransform("capitalize", capitalize)
	Strip      = TextTransform("strip", strings.TrimSpace)
	Lstrip     = TextTransform("lstrip", func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) })
	Rstrip     = TextTransform("rstrip", func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) })
	Abs        = Transform(abs)
	ToS        = Transform(func(value any) (any, error) { return cast.ToStringE(displayValue(value)) })
)

// namedTransforms is the static table behind NamedTransform.
var namedTransforms = map[string]Transform{
	"upcase":     Upcase,
	"downcase":   Downcase,
	"capitalize": Capitalize,
	"strip":      Strip,
	"lstrip":     Lstrip,
	"rstrip":     Rstrip,
	"abs":        Abs,
	"to_s":       ToS,
}

// NamedTransform looks up a built-in transform by name.
func NamedTransform(name string) (Transform, bool) {
	t, ok := namedTransforms[name]
	return t, ok
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func abs(value any) (any, error) {
	switch n := value.(type) {
	case int:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case float64:
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case decimal.Decimal:
		return n.Abs(), nil
	default:
		return nil, fmt.Errorf("%w: abs on %T", ErrTransformUnsupported, value)
	}
}
