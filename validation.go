package pave

import (
	"errors"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

var (
	ErrTypeMismatch  = errors.New("value cannot be coerced to the declared type")
	ErrUnknownType   = errors.New("unknown parameter type")
	ErrMissingBlock  = errors.New("no block given for nested parameter")
	ErrCatalogFormat = errors.New("unsupported catalog format")
)

// Reason identifies which step rejected a parameter.
type Reason int

const (
	ReasonTypeMismatch Reason = iota + 1
	ReasonRequired
	ReasonBlank
	ReasonFormatNotText
	ReasonFormatMismatch
	ReasonNotEqual
	ReasonNotInRange
	ReasonTooSmall
	ReasonTooLarge
	ReasonTooShort
	ReasonTooLong
	ReasonCustom
	ReasonTransformFailed
	ReasonMissingBlock
)

var reasonNames = map[Reason]string{
	ReasonTypeMismatch:    "type_mismatch",
	ReasonRequired:        "required",
	ReasonBlank:           "blank",
	ReasonFormatNotText:   "format_not_text",
	ReasonFormatMismatch:  "format_mismatch",
	ReasonNotEqual:        "not_equal",
	ReasonNotInRange:      "not_in_range",
	ReasonTooSmall:        "too_small",
	ReasonTooLarge:        "too_large",
	ReasonTooShort:        "too_short",
	ReasonTooLong:         "too_long",
	ReasonCustom:          "custom",
	ReasonTransformFailed: "transform_failed",
	ReasonMissingBlock:    "missing_block",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// InvalidParameterError is returned for every parameter that fails
// coercion, transformation or validation.
type InvalidParameterError struct {
	Param   string   // rendered path, e.g. book[author][first_name]
	Path    []string // path segments from the root
	Reason  Reason
	Value   any     // value at the point of failure
	Options Options // options in force for the parameter
	Message string  // translated message
	Err     error   // underlying cause, if any
}

// Error implements the error interface. Options.Message takes precedence
// over the translated message.
func (e *InvalidParameterError) Error() string {
	if e.Options.Message != "" {
		return e.Options.Message
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

// renderPath joins segments as root[child][grandchild].
func renderPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(path[0])
	for _, seg := range path[1:] {
		b.WriteString(PathOpen)
		b.WriteString(seg)
		b.WriteString(PathClose)
	}
	return b.String()
}
