package pave

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the semantic type a parameter is declared to hold.
//
// The set is closed: every Type has exactly one coercer in the
// coercion table and one Go result type.
type Type int

const (
	Integer  Type = iota + 1 // int
	Float                    // float64
	String                   // string
	Boolean                  // bool
	Date                     // time.Time truncated to the day
	DateTime                 // time.Time, full precision
	Time                     // time.Time, clock only
	Decimal                  // decimal.Decimal
	Array                    // []any
	Hash                     // map[string]any
	UUID                     // uuid.UUID
)

var typeNames = map[Type]string{
	Integer:  "Integer",
	Float:    "Float",
	String:   "String",
	Boolean:  "Boolean",
	Date:     "Date",
	DateTime: "DateTime",
	Time:     "Time",
	Decimal:  "BigDecimal",
	Array:    "Array",
	Hash:     "Hash",
	UUID:     "UUID",
}

// String returns the display name used in error messages.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// IsComposite reports whether values of t can be descended into.
func (t Type) IsComposite() bool {
	return t == Array || t == Hash
}

// IsTime reports whether t belongs to the date/time family.
func (t Type) IsTime() bool {
	return t == Date || t == DateTime || t == Time
}

// reflect.TypeOf constants for identity checks
var (
	IntType     = reflect.TypeOf(int(0))
	FloatType   = reflect.TypeOf(float64(0))
	StringType  = reflect.TypeOf("")
	BoolType    = reflect.TypeOf(false)
	TimeType    = reflect.TypeOf(time.Time{})
	DecimalType = reflect.TypeOf(decimal.Decimal{})
	ArrayType   = reflect.TypeOf([]any{})
	HashType    = reflect.TypeOf(map[string]any{})
	UUIDType    = reflect.TypeOf(uuid.UUID{})
)

// goType is the Go type a coerced value of t has.
func (t Type) goType() reflect.Type {
	switch t {
	case Integer:
		return IntType
	case Float:
		return FloatType
	case String:
		return StringType
	case Boolean:
		return BoolType
	case Date, DateTime, Time:
		return TimeType
	case Decimal:
		return DecimalType
	case Array:
		return ArrayType
	case Hash:
		return HashType
	case UUID:
		return UUIDType
	default:
		return nil
	}
}
