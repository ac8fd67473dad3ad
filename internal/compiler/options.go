package compiler

import "github.com/conscript-lang/conscript/typecheck"

// Option mutates an Options value and marks which field it touched, so
// Apply's merge can tell an explicit per-call override from an untouched
// default (spec §6's "options merge per-call-over-global").
type Option func(*Options, *touchedFields)

// WithAllowRegexLiterals toggles `@pattern@` regex-literal parsing (spec
// §4.3.6).
func WithAllowRegexLiterals(v bool) Option {
	return func(o *Options, t *touchedFields) {
		o.AllowRegexLiterals = v
		t.allowRegexLiterals = true
	}
}

// WithSafe sets safeCall, safeNav, and safeOp together (spec §3's `safe`
// shortcut option).
func WithSafe(v bool) Option {
	return func(o *Options, t *touchedFields) {
		*o = o.WithSafe(v)
		t.safeCall, t.safeNav, t.safeOp = true, true, true
	}
}

func WithSafeCall(v bool) Option {
	return func(o *Options, t *touchedFields) { o.SafeCall = v; t.safeCall = true }
}

func WithSafeNav(v bool) Option {
	return func(o *Options, t *touchedFields) { o.SafeNav = v; t.safeNav = true }
}

func WithSafeOp(v bool) Option {
	return func(o *Options, t *touchedFields) { o.SafeOp = v; t.safeOp = true }
}

// WithUnknownsAre sets the policy for an unresolved bare identifier (spec
// §4.4).
func WithUnknownsAre(mode UnknownsMode) Option {
	return func(o *Options, t *touchedFields) { o.UnknownsAre = mode; t.unknownsAre = true }
}

// WithDebugOutput installs the sink for the `debug` prefix (spec §4.3.3).
func WithDebugOutput(sink DebugSink) Option {
	return func(o *Options, t *touchedFields) { o.DebugOutput = sink; t.debugOutput = true }
}

// WithTypeChecker installs the external type-predicate service backing
// `is`/`is not` (spec §6).
func WithTypeChecker(tc typecheck.Checker) Option {
	return func(o *Options, t *touchedFields) { o.TypeChecker = tc; t.typeChecker = true }
}

// Apply folds opts onto base, left to right, and returns the merged
// Options. A later Option touching the same field as an earlier one wins;
// an Option never touching a field leaves base's value for it untouched.
func Apply(base Options, opts ...Option) Options {
	var override Options
	var touched touchedFields
	for _, opt := range opts {
		opt(&override, &touched)
	}
	return base.merge(override, touched)
}
