package types

import "fmt"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindParse                ErrKind = iota // malformed NVRAM image
	ErrKindSectionTooBig                       // section contents exceed its capacity
	ErrKindMissingPartitionName                // reference token lacks the "partition:" prefix
	ErrKindMissingValue                        // write token lacks "=value"
	ErrKindVariableNotFound                    // read of a variable that does not exist
	ErrKindUnknownPartition                    // partition name other than common/system
	ErrKindInvalidHex                          // bad %XX escape in a value
	ErrKindIO                                  // device open/read/write failure
)

// String returns the stable name of the kind, used in CLI diagnostics.
func (k ErrKind) String() string {
	switch k {
	case ErrKindParse:
		return "Parse"
	case ErrKindSectionTooBig:
		return "SectionTooBig"
	case ErrKindMissingPartitionName:
		return "MissingPartitionName"
	case ErrKindMissingValue:
		return "MissingValue"
	case ErrKindVariableNotFound:
		return "VariableNotFound"
	case ErrKindUnknownPartition:
		return "UnknownPartition"
	case ErrKindInvalidHex:
		return "InvalidHex"
	case ErrKindIO:
		return "IO"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so that detailed
// errors built with Newf or Wrap still match the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind ErrKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	for err != nil {
		if te, ok := err.(*Error); ok && te != nil {
			return te.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}

// Sentinels commonly returned by implementations.
var (
	// ErrParse indicates the device contents are not a valid NVRAM image.
	ErrParse = &Error{Kind: ErrKindParse, Msg: "malformed nvram image"}
	// ErrSectionTooBig indicates a section does not fit its allotted space.
	ErrSectionTooBig = &Error{Kind: ErrKindSectionTooBig, Msg: "section too big"}
	// ErrMissingPartitionName indicates a reference without a partition prefix.
	ErrMissingPartitionName = &Error{Kind: ErrKindMissingPartitionName, Msg: "missing partition name"}
	// ErrMissingValue indicates a write reference without "=value".
	ErrMissingValue = &Error{Kind: ErrKindMissingValue, Msg: "missing value"}
	// ErrVariableNotFound indicates a read of an absent variable.
	ErrVariableNotFound = &Error{Kind: ErrKindVariableNotFound, Msg: "variable not found"}
	// ErrUnknownPartition indicates a partition name other than common or system.
	ErrUnknownPartition = &Error{Kind: ErrKindUnknownPartition, Msg: "unknown partition"}
	// ErrInvalidHex indicates a malformed percent escape.
	ErrInvalidHex = &Error{Kind: ErrKindInvalidHex, Msg: "invalid hex escape"}
	// ErrIO indicates a device access failure.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "device i/o"}
)
