package pave

import (
	"fmt"
	"regexp"
	"strings"
)

// Options configures the coercion and validation of a single parameter.
//
// The zero value of every field means the option is not set. Rules run in
// a fixed order regardless of which fields are populated:
//
//	Required, NotBlank, Format, Is, In, Min, Max, MinLength, MaxLength, Custom
type Options struct {
	// Required fails the parameter when it is still nil after defaults.
	Required bool
	// NotBlank fails empty text, empty arrays and empty hashes.
	NotBlank bool
	// Default replaces a nil value. A func() any or func() (any, error) is
	// called to produce it.
	Default any
	// Transform replaces a non-nil value before validation.
	Transform Transform
	// Format must match text values. Date/time values skip the match.
	Format *regexp.Regexp
	// Layout is the time.Parse layout used for Date, DateTime and Time.
	Layout string
	// Is requires strict equality with the given value.
	Is any
	// In accepts a Range, a slice of allowed values or a single value.
	In any
	// Min and Max bound numbers, text and times, inclusive.
	Min any
	Max any
	// MinLength and MaxLength bound the rune count of text and the element
	// count of arrays and hashes.
	MinLength *int
	MaxLength *int
	// Precision is the number of significant digits kept by Decimal.
	Precision int
	// Delimiter splits Array and Hash text, Separator splits Hash pairs.
	Delimiter string
	Separator string
	// Message replaces the text of any error raised for this parameter.
	Message string
	// Custom is called with the final value unless it is nil. A non-nil
	// error fails the parameter with the error's own text.
	Custom func(value any) error
}

// Len is a helper for MinLength and MaxLength literals.
func Len(n int) *int {
	return &n
}

func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return DefaultDelimiter
	}
	return o.Delimiter
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

func (o Options) precision() int32 {
	if o.Precision <= 0 {
		return DefaultPrecision
	}
	return int32(o.Precision)
}

func (o Options) hasDefault() bool {
	return o.Default != nil
}

// defaultValue resolves the configured default, calling producers.
func (o Options) defaultValue() any {
	switch d := o.Default.(type) {
	case func() any:
		return d()
	case func() (any, error):
		v, err := d()
		if err != nil {
			return nil
		}
		return v
	default:
		return d
	}
}

// Range is an inclusive interval for the In option.
type Range struct {
	Lo any
	Hi any
}

// Between builds an inclusive Range.
func Between(lo, hi any) Range {
	return Range{Lo: lo, Hi: hi}
}

// String renders the range the way it appears in messages: "1..100".
func (r Range) String() string {
	return fmt.Sprintf("%v..%v", displayValue(r.Lo), displayValue(r.Hi))
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v any) bool {
	lo, err := compare(v, r.Lo)
	if err != nil || lo < 0 {
		return false
	}
	hi, err := compare(v, r.Hi)
	return err == nil && hi <= 0
}

// Set is a discrete set of accepted values for the In option.
type Set []any

// OneOf builds a Set.
func OneOf(values ...any) Set {
	return Set(values)
}

// String renders the set as ["a", "b"].
func (s Set) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		if str, ok := v.(string); ok {
			parts[i] = fmt.Sprintf("%q", str)
			continue
		}
		parts[i] = fmt.Sprint(displayValue(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Contains reports whether v equals any member of the set.
func (s Set) Contains(v any) bool {
	for _, member := range s {
		if equal(v, member) {
			return true
		}
	}
	return false
}
