package errs

// Error Message Catalog
//
// Standardized message fragments reused across the compiler and runtime,
// following the teacher's `internal/interp/errors/catalog.go` convention of
// exported constants rather than ad hoc inline strings scattered across
// call sites.

const (
	// Syntax-time messages (Compile).
	ErrMsgEmptySource            = "source is empty"
	ErrMsgUnterminatedTernary    = "unterminated ternary: missing `:`"
	ErrMsgEmptyRightOperand      = "operator %q has no right operand"
	ErrMsgUnknownBareIdentifier  = "bare identifier %q contains characters that cannot start an identifier"
	ErrMsgDuplicateDecimalPoint  = "number literal %q has more than one decimal point"
	ErrMsgLeadingDotNoDefault    = "leading `.` property access requires a defaultLeft value" // raised from Exec as a type error
	ErrMsgUnterminatedBracket    = "unterminated %q...%q"
	ErrMsgUnterminatedString     = "unterminated string literal"
	ErrMsgUnterminatedRegex      = "unterminated regex literal"
	ErrMsgRegexLiteralsDisallowed = "regex literals are disallowed (allowRegexLiterals is false)"
	ErrMsgInvalidRegex           = "invalid regex literal: %s"
	ErrMsgUnexpectedToken        = "unexpected input: %q"
	ErrMsgUnknownOperator        = "unknown operator %q"

	// Reference-time messages (Exec, unknownsAre: errors).
	ErrMsgUnresolvedIdentifier = "unresolved identifier"

	// Type-time messages (Exec, suppressed by safe modes).
	ErrMsgNotCallable        = "cannot call %s: not a function"
	ErrMsgNotAnObject        = "cannot access property %q of %s: not an object"
	ErrMsgUnknownProperty    = "unknown property %q on %s"
	ErrMsgArithmeticMismatch = "operator %q cannot combine %s and %s"
	ErrMsgMatchesOperands    = "`matches` requires exactly one regex operand, got %s and %s"
	ErrMsgNaNResult          = "operator %q produced NaN"
	ErrMsgIsDescriptorType   = "`is` right operand must be a string descriptor, got %s"
)
