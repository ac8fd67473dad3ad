package cmd

import (
	"testing"

	"github.com/conscript-lang/conscript"
)

func TestConscriptUnknownsMode(t *testing.T) {
	tests := []struct {
		in     string
		want   conscript.UnknownsMode
		wantOK bool
	}{
		{"", conscript.UnknownsAsStrings, true},
		{"strings", conscript.UnknownsAsStrings, true},
		{"str", conscript.UnknownsAsStrings, true},
		{"null", conscript.UnknownsAsNull, true},
		{"errors", conscript.UnknownsAsErrors, true},
		{"err", conscript.UnknownsAsErrors, true},
		{"bogus", conscript.UnknownsAsStrings, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := conscriptUnknownsMode(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("conscriptUnknownsMode(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestReportCompileErrorReturnsErrorForSyntaxError(t *testing.T) {
	_, err := conscript.Compile("")
	if err == nil {
		t.Fatalf("expected a compile error")
	}
	wrapped := reportCompileError(err)
	if wrapped == nil {
		t.Fatalf("expected reportCompileError to return a non-nil error")
	}
}
