// Package cursor implements the rewindable, bracket-aware character scanner
// that is conscript's only mutable parse state (spec §2.1, §4.1). Unlike a
// conventional lexer+parser split, conscript's tokens are context-sensitive
// (unquoted identifiers may contain spaces, `-` is ambiguous with
// subtraction, `{...}` both delimits a literal identifier and a function
// body), so this cursor exposes scanning primitives directly to the grammar
// layers instead of producing an independent token stream — the same
// tradeoff the teacher's lexer makes with Mark/ResetTo backtracking
// (internal/lexer.LexerState, internal/parser/expressions.go's cursor
// Mark/ResetTo), generalized here from a token stream to raw runes.
package cursor

import (
	"strings"
	"unicode"
)

// Pair is one entry in a bracket table: an open/close rune pair whose
// interior is skipped by terminator scans at the enclosing nesting depth.
// Quote pairs set Open == Close and are additionally escape-aware.
type Pair struct {
	Open  rune
	Close rune
}

// DefaultBrackets is the bracket table in effect everywhere in conscript's
// grammar (spec §3 invariants): (), [], {} nest; ", ', and @ are quote
// pairs whose interior honours `\` escapes.
var DefaultBrackets = []Pair{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'"', '"'},
	{'\'', '\''},
	{'@', '@'},
}

const escapeRune = '\\'

// Cursor is a rewindable scanner over a conscription source slice.
type Cursor struct {
	src []rune
	pos int
}

// New creates a Cursor positioned at the start of src.
func New(src string) *Cursor {
	return &Cursor{src: []rune(src)}
}

// Mark captures the current position for later ResetTo, mirroring the
// teacher's Lexer.Mark/ResetTo backtracking pair.
func (c *Cursor) Mark() int { return c.pos }

// ResetTo rewinds the cursor to a position previously returned by Mark.
func (c *Cursor) ResetTo(pos int) { c.pos = pos }

// Pos returns the current rune offset, used for error positions.
func (c *Cursor) Pos() int { return c.pos }

// Column returns a 1-based column for the current position (conscript
// conscriptions are always one line, so column doubles as offset+1).
func (c *Cursor) Column() int { return c.pos + 1 }

// AtEnd reports whether the cursor has consumed the whole source.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// Remaining returns the unconsumed tail of the source.
func (c *Cursor) Remaining() string { return string(c.src[c.pos:]) }

// Peek returns the next k runes without consuming them (fewer at end).
func (c *Cursor) Peek(k int) string {
	end := c.pos + k
	if end > len(c.src) {
		end = len(c.src)
	}
	return string(c.src[c.pos:end])
}

// PeekRune returns the next rune and whether one was available.
func (c *Cursor) PeekRune() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.src[c.pos], true
}

// PeekBack returns up to k runes immediately before the current position,
// used by the comparison layer's word-boundary check (spec §4.2's note on
// `!is`/`!in`/`!matches` tokenizing as single operators, not as `!` plus a
// bare word that might otherwise be mid-identifier).
func (c *Cursor) PeekBack(k int) string {
	start := c.pos - k
	if start < 0 {
		start = 0
	}
	return string(c.src[start:c.pos])
}

// SkipSpaces advances past whitespace (any rune unicode.IsSpace accepts).
func (c *Cursor) SkipSpaces() {
	c.ConsumeWhile(unicode.IsSpace)
}

// Consume matches the first literal in lits that equals the upcoming text
// (case-insensitively if ci) and advances past it, returning the literal
// exactly as it appeared in lits. Returns "", false if none match.
func (c *Cursor) Consume(ci bool, lits ...string) (string, bool) {
	for _, lit := range lits {
		if lit == "" {
			continue
		}
		upcoming := c.Peek(len([]rune(lit)))
		if literalEquals(upcoming, lit, ci) {
			c.pos += len([]rune(lit))
			return lit, true
		}
	}
	return "", false
}

func literalEquals(a, b string, ci bool) bool {
	if ci {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// ConsumeWhile accumulates and consumes runes for which class returns true.
func (c *Cursor) ConsumeWhile(class func(rune) bool) string {
	start := c.pos
	for c.pos < len(c.src) && class(c.src[c.pos]) {
		c.pos++
	}
	return string(c.src[start:c.pos])
}

// Reject lets a caller veto an otherwise-matching separator at the current
// scan position — conscript's users are the math layer's `-`-as-sign
// ambiguity (spec §4.2) and the comparison layer's word-boundary check:
// offset is the distance in runes from the start of the chunk being
// scanned, matched is the candidate separator text.
type Reject func(matched string, offset int) bool

// Until returns the substring from the current position up to (but not
// past) the first unescaped occurrence, at bracket nesting depth zero, of
// any separator in seps, honouring `\` escapes within quote spans. Each
// pair in ignore delimits a region whose contents are skipped entirely by
// the separator search; quote pairs (Open == Close) are further
// escape-aware. When multiple separators match at the same position, the
// longest wins (so "is not" beats "is", "<=" beats "<"). reject, if
// non-nil, may veto a match and force the scan to continue past it; pass
// nil to accept every match. The matched separator is NOT consumed by
// Until. found is false if no separator occurs before the source ends, in
// which case the whole remaining source is returned.
func (c *Cursor) Until(ignore []Pair, seps []string, reject Reject) (text string, matched string, found bool) {
	start := c.pos
	var stack []rune // close runes of currently open non-quote brackets

	for c.pos < len(c.src) {
		ch := c.src[c.pos]

		if len(stack) == 0 {
			if ch == escapeRune && c.pos+1 < len(c.src) {
				c.pos += 2
				continue
			}
			if sep, ok := c.longestMatch(seps); ok {
				if reject == nil || !reject(sep, c.pos-start) {
					text = string(c.src[start:c.pos])
					return text, sep, true
				}
			}
		}

		if len(stack) > 0 && ch == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			c.pos++
			continue
		}

		if opened := matchOpen(ch, ignore); opened != 0 {
			if isQuotePair(ch, ignore) {
				c.pos++
				c.skipQuoteBody(ch)
				continue
			}
			stack = append(stack, opened)
			c.pos++
			continue
		}

		c.pos++
	}

	text = string(c.src[start:c.pos])
	return text, "", false
}

// longestMatch reports the longest entry of seps that matches the upcoming
// text at the cursor's current position.
func (c *Cursor) longestMatch(seps []string) (string, bool) {
	best := ""
	for _, sep := range seps {
		if sep == "" || len(sep) <= len(best) {
			continue
		}
		if literalEquals(c.Peek(len([]rune(sep))), sep, false) {
			best = sep
		}
	}
	return best, best != ""
}

// skipQuoteBody advances past a quote-delimited span (already past the
// opening quote rune) honouring `\` escapes, leaving the cursor just past
// the matching closing quote rune (or at end if unterminated).
func (c *Cursor) skipQuoteBody(quote rune) {
	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		if ch == escapeRune && c.pos+1 < len(c.src) {
			c.pos += 2
			continue
		}
		if ch == quote {
			c.pos++
			return
		}
		c.pos++
	}
}

func matchOpen(ch rune, ignore []Pair) rune {
	for _, p := range ignore {
		if p.Open == ch {
			return p.Close
		}
	}
	return 0
}

func isQuotePair(ch rune, ignore []Pair) bool {
	for _, p := range ignore {
		if p.Open == ch && p.Open == p.Close {
			return true
		}
	}
	return false
}

// UntilUnescaped scans forward to the next unescaped occurrence of
// terminator, honouring `\` as the escape rune, with no bracket-nesting
// awareness — used for regex-literal patterns (spec §4.3.6), which are
// raw text, not conscript-nested. The terminator is consumed; found is
// false if the source ends first.
func (c *Cursor) UntilUnescaped(terminator rune) (text string, found bool) {
	start := c.pos
	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		if ch == escapeRune && c.pos+1 < len(c.src) {
			c.pos += 2
			continue
		}
		if ch == terminator {
			text = string(c.src[start:c.pos])
			c.pos++
			return text, true
		}
		c.pos++
	}
	return string(c.src[start:c.pos]), false
}

// QuoteBody consumes a quote-delimited span whose opening quote rune was
// already consumed by the caller, unescaping `\`-escapes as it goes
// (spec §4.3.7), and returns the decoded text. found is false if the
// source ends before the matching closing quote.
func (c *Cursor) QuoteBody(quote rune) (text string, found bool) {
	var b strings.Builder
	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		if ch == escapeRune && c.pos+1 < len(c.src) {
			b.WriteRune(unescape(c.src[c.pos+1]))
			c.pos += 2
			continue
		}
		if ch == quote {
			c.pos++
			return b.String(), true
		}
		b.WriteRune(ch)
		c.pos++
	}
	return b.String(), false
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// ThroughEnd assumes the cursor is immediately after an `open` rune already
// consumed by the caller, and returns the interior text up to the matching
// `close` at nesting depth zero, consuming that close. found is false if
// the source ends before a matching close is found.
func (c *Cursor) ThroughEnd(open, close rune) (interior string, found bool) {
	start := c.pos
	depth := 1
	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		if ch == escapeRune && c.pos+1 < len(c.src) {
			c.pos += 2
			continue
		}
		switch ch {
		case open:
			if open != close {
				depth++
			}
		case close:
			depth--
			if depth == 0 {
				interior = string(c.src[start:c.pos])
				c.pos++ // consume the close
				return interior, true
			}
		}
		c.pos++
	}
	return string(c.src[start:c.pos]), false
}

// Bracket combines ThroughEnd with a recursive parse of the interior via
// Sub, assuming the cursor is already positioned just after `open`.
func Bracket[T any](c *Cursor, rule func(*Cursor) (T, error), open, close rune, onUnterminated func() error) (T, error) {
	var zero T
	interior, found := c.ThroughEnd(open, close)
	if !found {
		return zero, onUnterminated()
	}
	return Sub(rule, interior)
}

// Sub evaluates rule on a fresh cursor over substring, in isolation from
// the caller's cursor position (spec §2.2's `sub(rule, slice, context)`).
func Sub[T any](rule func(*Cursor) (T, error), substring string) (T, error) {
	return rule(New(substring))
}

// IsIdentRune reports whether r is part of conscript's bare-identifier
// character class: alphanumeric, underscore, or space (spec §4.4).
func IsIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ' '
}

// TrimIdent trims leading/trailing whitespace from an identifier chunk,
// per spec §4.4 ("leading and trailing whitespace inside an identifier is
// trimmed").
func TrimIdent(s string) string {
	return strings.TrimSpace(s)
}
