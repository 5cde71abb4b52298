package pave

import (
	"errors"
	"reflect"
	"strings"
	"time"
	"unicode"
)

// rule is one validation step. check returns nil when the value passes.
type rule struct {
	name   string
	active func(o Options) bool
	check  func(p *parameter) *InvalidParameterError
}

// rules run in this order for every parameter. Only required looks at nil
// values; the others pass nil through.
var rules = []rule{
	{"required", func(o Options) bool { return o.Required }, checkRequired},
	{"blank", func(o Options) bool { return o.NotBlank }, checkBlank},
	{"format", func(o Options) bool { return o.Format != nil }, checkFormat},
	{"is", func(o Options) bool { return o.Is != nil }, checkIs},
	{"in", func(o Options) bool { return o.In != nil }, checkIn},
	{"min", func(o Options) bool { return o.Min != nil }, checkMin},
	{"max", func(o Options) bool { return o.Max != nil }, checkMax},
	{"min_length", func(o Options) bool { return o.MinLength != nil }, checkMinLength},
	{"max_length", func(o Options) bool { return o.MaxLength != nil }, checkMaxLength},
	{"custom", func(o Options) bool { return o.Custom != nil }, checkCustom},
}

// validate runs every active rule against p and stops at the first failure.
func validate(p *parameter) *InvalidParameterError {
	for _, r := range rules {
		if !r.active(p.opts) {
			continue
		}
		if err := r.check(p); err != nil {
			return err
		}
	}
	return nil
}

func checkRequired(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return p.fail(ReasonRequired, MsgRequiredMissing, nil, nil)
	}
	return nil
}

func checkBlank(p *parameter) *InvalidParameterError {
	if p.value != nil && isBlank(p.value) {
		return p.fail(ReasonBlank, MsgBlank, nil, nil)
	}
	return nil
}

// isBlank is true for text without a non-space character and for empty
// arrays and hashes.
func isBlank(v any) bool {
	if s, ok := v.(string); ok {
		return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}

func checkFormat(p *parameter) *InvalidParameterError {
	switch v := p.value.(type) {
	case nil, time.Time:
		return nil
	case string:
		if !p.opts.Format.MatchString(v) {
			return p.fail(ReasonFormatMismatch, MsgFormatNotMatched, p.opts.Format.String(), nil)
		}
		return nil
	default:
		return p.fail(ReasonFormatNotText, MsgStringFormat, nil, nil)
	}
}

func checkIs(p *parameter) *InvalidParameterError {
	if p.value != nil && !equal(p.value, p.opts.Is) {
		return p.fail(ReasonNotEqual, MsgNotEqual, p.opts.Is, nil)
	}
	return nil
}

func checkIn(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return nil
	}

	set := membership(p.opts.In)
	if !set.Contains(p.value) {
		return p.fail(ReasonNotInRange, MsgNotInRange, set, nil)
	}
	return nil
}

// container is anything the In option can test against.
type container interface {
	Contains(v any) bool
}

// membership normalizes the In option: ranges and sets stay as they are,
// slices become a Set, anything else a single-member Set.
func membership(in any) container {
	switch v := in.(type) {
	case container:
		return v
	}

	rv := reflect.ValueOf(in)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		set := make(Set, rv.Len())
		for i := range set {
			set[i] = rv.Index(i).Interface()
		}
		return set
	}
	return Set{in}
}

func checkMin(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return nil
	}
	if c, err := compare(p.value, p.opts.Min); err != nil || c < 0 {
		return p.fail(ReasonTooSmall, MsgLessThan, p.opts.Min, err)
	}
	return nil
}

func checkMax(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return nil
	}
	if c, err := compare(p.value, p.opts.Max); err != nil || c > 0 {
		return p.fail(ReasonTooLarge, MsgGreaterThan, p.opts.Max, err)
	}
	return nil
}

func checkMinLength(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return nil
	}
	if n, ok := length(p.value); !ok || n < *p.opts.MinLength {
		return p.fail(ReasonTooShort, MsgTooShort, *p.opts.MinLength, nil)
	}
	return nil
}

func checkMaxLength(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return nil
	}
	if n, ok := length(p.value); !ok || n > *p.opts.MaxLength {
		return p.fail(ReasonTooLong, MsgTooLong, *p.opts.MaxLength, nil)
	}
	return nil
}

// checkCustom hands the value to the caller's validator. Its error text
// becomes the message.
func checkCustom(p *parameter) *InvalidParameterError {
	if p.value == nil {
		return nil
	}

	err := p.opts.Custom(p.value)
	if err == nil {
		return nil
	}

	var shared *InvalidParameterError
	if errors.As(err, &shared) {
		// the validator may hand out the same error value on every call
		cp := *shared
		ipe := &cp
		if ipe.Param == "" {
			ipe.Param = renderPath(p.path)
			ipe.Path = p.path
		}
		if ipe.Reason == 0 {
			ipe.Reason = ReasonCustom
		}
		if ipe.Message == "" {
			ipe.Message = err.Error()
		}
		ipe.Options = p.opts
		ipe.Value = p.value
		return ipe
	}

	return &InvalidParameterError{
		Param:   renderPath(p.path),
		Path:    p.path,
		Reason:  ReasonCustom,
		Value:   p.value,
		Options: p.opts,
		Message: err.Error(),
		Err:     err,
	}
}
