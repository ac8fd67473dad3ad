package cursor

import "testing"

func TestConsume(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		ci      bool
		lits    []string
		wantLit string
		wantOK  bool
		wantPos int
	}{
		{"exact match", "true", false, []string{"true"}, "true", true, 4},
		{"case-insensitive match", "TRUE", true, []string{"true"}, "true", true, 4},
		{"case-sensitive mismatch", "TRUE", false, []string{"true"}, "", false, 0},
		{"first of several", "in", false, []string{"is", "in"}, "in", true, 2},
		{"no match", "foo", false, []string{"bar"}, "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.src)
			lit, ok := c.Consume(tt.ci, tt.lits...)
			if lit != tt.wantLit || ok != tt.wantOK {
				t.Fatalf("Consume() = (%q, %v), want (%q, %v)", lit, ok, tt.wantLit, tt.wantOK)
			}
			if c.Pos() != tt.wantPos {
				t.Fatalf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}

func TestUntilFindsLongestSeparator(t *testing.T) {
	c := New("a is not b")
	text, matched, found := c.Until(DefaultBrackets, []string{"is", "is not"}, nil)
	if !found {
		t.Fatalf("expected a separator to be found")
	}
	if matched != "is not" {
		t.Fatalf("matched = %q, want %q (longest-match rule)", matched, "is not")
	}
	if text != "a " {
		t.Fatalf("text = %q, want %q", text, "a ")
	}
}

func TestUntilSkipsBracketInteriors(t *testing.T) {
	c := New(`foo(a, b) + 1`)
	text, matched, found := c.Until(DefaultBrackets, []string{"+"}, nil)
	if !found || matched != "+" {
		t.Fatalf("expected to find '+' outside the parens, got matched=%q found=%v", matched, found)
	}
	if text != "foo(a, b) " {
		t.Fatalf("text = %q, want %q", text, "foo(a, b) ")
	}
}

func TestUntilHonoursQuoteEscapes(t *testing.T) {
	c := New(`"a\"b" + 1`)
	text, matched, found := c.Until(DefaultBrackets, []string{"+"}, nil)
	if !found || matched != "+" {
		t.Fatalf("expected to find '+' after the quoted span, got matched=%q found=%v", matched, found)
	}
	if text != `"a\"b" ` {
		t.Fatalf("text = %q, want %q", text, `"a\"b" `)
	}
}

func TestUntilReject(t *testing.T) {
	c := New("-1 + 2")
	reject := func(matched string, offset int) bool {
		return matched == "-" && offset == 0
	}
	text, matched, found := c.Until(DefaultBrackets, []string{"-", "+"}, reject)
	if !found || matched != "+" {
		t.Fatalf("expected the leading '-' to be vetoed and '+' to match instead, got matched=%q found=%v", matched, found)
	}
	if text != "-1 " {
		t.Fatalf("text = %q, want %q", text, "-1 ")
	}
}

func TestUntilNotFound(t *testing.T) {
	c := New("no separator here")
	text, matched, found := c.Until(DefaultBrackets, []string{"+"}, nil)
	if found {
		t.Fatalf("expected not found")
	}
	if matched != "" {
		t.Fatalf("matched = %q, want empty", matched)
	}
	if text != "no separator here" {
		t.Fatalf("text = %q, want whole remaining source", text)
	}
}

func TestThroughEndNesting(t *testing.T) {
	c := New("a(b(c))d) rest")
	c.Consume(false, "a")
	c.Consume(false, "(")
	interior, found := c.ThroughEnd('(', ')')
	if !found {
		t.Fatalf("expected a matching close paren")
	}
	if interior != "b(c)" {
		t.Fatalf("interior = %q, want %q", interior, "b(c)")
	}
	if c.Remaining() != "d) rest" {
		t.Fatalf("Remaining() = %q, want %q", c.Remaining(), "d) rest")
	}
}

func TestThroughEndUnterminated(t *testing.T) {
	c := New("abc")
	_, found := c.ThroughEnd('(', ')')
	if found {
		t.Fatalf("expected unterminated bracket to report found=false")
	}
}

func TestQuoteBodyUnescapes(t *testing.T) {
	c := New(`a\nb\tc\\d" rest`)
	text, found := c.QuoteBody('"')
	if !found {
		t.Fatalf("expected a closing quote")
	}
	if text != "a\nb\tc\\d" {
		t.Fatalf("text = %q, want %q", text, "a\nb\tc\\d")
	}
	if c.Remaining() != " rest" {
		t.Fatalf("Remaining() = %q, want %q", c.Remaining(), " rest")
	}
}

func TestMarkAndResetTo(t *testing.T) {
	c := New("hello world")
	c.ConsumeWhile(func(r rune) bool { return r != ' ' })
	mark := c.Mark()
	c.SkipSpaces()
	c.ConsumeWhile(func(r rune) bool { return r != 0 })
	c.ResetTo(mark)
	if c.Remaining() != " world" {
		t.Fatalf("Remaining() after ResetTo = %q, want %q", c.Remaining(), " world")
	}
}

func TestPeekBack(t *testing.T) {
	c := New("hello")
	c.ConsumeWhile(func(r rune) bool { return r != 0 }) // consume everything
	if got := c.PeekBack(3); got != "llo" {
		t.Fatalf("PeekBack(3) = %q, want %q", got, "llo")
	}
	if got := c.PeekBack(100); got != "hello" {
		t.Fatalf("PeekBack(100) at end = %q, want the whole source", got)
	}
}

func TestSubIsolatesPosition(t *testing.T) {
	outer := New("abc")
	outer.Consume(false, "a")
	result, err := Sub(func(c *Cursor) (string, error) {
		return c.Remaining(), nil
	}, "xyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "xyz" {
		t.Fatalf("Sub result = %q, want %q", result, "xyz")
	}
	if outer.Remaining() != "bc" {
		t.Fatalf("outer cursor must be unaffected by Sub, got Remaining()=%q", outer.Remaining())
	}
}

func TestTrimIdent(t *testing.T) {
	if got := TrimIdent("  hello world  "); got != "hello world" {
		t.Fatalf("TrimIdent = %q, want %q", got, "hello world")
	}
}

func TestIsIdentRune(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'9', true},
		{'_', true},
		{' ', true},
		{'.', false},
		{'(', false},
	}
	for _, tt := range tests {
		if got := IsIdentRune(tt.r); got != tt.want {
			t.Errorf("IsIdentRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
