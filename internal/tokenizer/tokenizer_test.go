package tokenizer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple words",
			text: "apple banana apple",
			want: []string{"apple", "banana", "apple"},
		},
		{
			name: "lowercases input",
			text: "Hello WORLD",
			want: []string{"hello", "world"},
		},
		{
			name: "punctuation stripped",
			text: `it's a "quoted" (test), really.`,
			want: []string{"it", "s", "a", "quoted", "test", "really"},
		},
		{
			name: "newlines split",
			text: "one\ntwo\nthree",
			want: []string{"one", "two", "three"},
		},
		{
			name: "consecutive delimiters produce no empties",
			text: "a..,,  ''b",
			want: []string{"a", "b"},
		},
		{
			name: "backticks split",
			text: "use `go build` here",
			want: []string{"use", "go", "build", "here"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "only delimiters",
			text: ".,()'\"\n ",
			want: nil,
		},
		{
			name: "hyphens and digits survive",
			text: "well-known 42 things",
			want: []string{"well-known", "42", "things"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestTokenize_noDelimiterSurvives(t *testing.T) {
	inputs := []string{
		"plain text",
		`mixed. "everything", (here) 'and' more`,
		"line\nbreaks\neverywhere",
		strings.Repeat("a.b ", 50),
	}
	for _, in := range inputs {
		for _, tok := range Tokenize(in) {
			if strings.ContainsAny(tok, delimiters) {
				t.Errorf("token %q from %q contains a delimiter", tok, in)
			}
			if tok == "" {
				t.Errorf("empty token from %q", in)
			}
		}
	}
}
