package pave

// constants for coercion defaults
const (
	DefaultPrecision = 14
	DefaultDelimiter = ","
	DefaultSeparator = ":"

	// currencyCutset is stripped from decimal text before parsing.
	currencyCutset = "$,"
)

// Path rendering
const (
	PathOpen  = "["
	PathClose = "]"
)

// noIndex is passed to blocks for hash children.
const noIndex = -1

// Message catalog keys. Every key exists in the embedded English catalog.
const (
	MsgTypeInvalid      = "pave.type.invalid"
	MsgRequiredMissing  = "pave.empty.required_missing"
	MsgBlank            = "pave.empty.blank"
	MsgStringFormat     = "pave.format.string_format"
	MsgFormatNotMatched = "pave.format.format_not_matching"
	MsgNotEqual         = "pave.format.format_not_values"
	MsgNotInRange       = "pave.value.not_in_range"
	MsgLessThan         = "pave.value.not_less_than"
	MsgGreaterThan      = "pave.value.not_greater_than"
	MsgTooShort         = "pave.length.too_short"
	MsgTooLong          = "pave.length.too_big"
	MsgTransformFailed  = "pave.transform.failed"
	MsgMissingBlock     = "pave.block.missing"
)

// Template data keys handed to a Translator.
const (
	MsgDataParam = "param"
	MsgDataValue = "value"
	MsgDataType  = "type"
)

// Mime Type constants for content types and encodings.
const (
	ContentTypeApplicationJSON string = "application/json"
	ContentTypeForm            string = "application/x-www-form-urlencoded"
)

// defaultTimeLayouts are tried in order when no Layout option is given.
var defaultTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05 Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
	"3:04PM",
	"3:04 PM",
}
