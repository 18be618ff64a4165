package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	profileLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `(?://|#)[^\n]*`},
		{Name: "String", Pattern: "\"(?:\\\\.|[^\"])*\"|`[^`]*`"},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Symbol", Pattern: `[{}:;]`},
	})

	profileParser = participle.MustBuild[Profile](
		participle.Lexer(profileLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// Profile is the root AST node of a render profile file.
type Profile struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'profile' @Ident"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is either a path rewrite rule or a key: value setting.
type Entry struct {
	Rewrite *Rewrite `parser:"  @@"`
	Setting *Setting `parser:"| @@"`
}

// Rewrite maps a stored image path prefix to a local directory.
type Rewrite struct {
	Pos  lexer.Position `parser:"" json:"-"`
	From StringLiteral  `parser:"'rewrite' @String"`
	To   StringLiteral  `parser:"Arrow @String"`
}

// Setting is a key followed by one or more values on the same line.
type Setting struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Key    string         `parser:"@Ident ':'"`
	Values []*Value       `parser:"@@+"`
}

// Value is a single setting value.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Raw returns the value as written, without quotes.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture; back-quoted strings keep
// backslashes verbatim, which suits Windows paths.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a profile from an io.Reader.
func Parse(r io.Reader) (*Profile, error) {
	return profileParser.Parse("", r)
}

// ParseString parses a profile from a string.
func ParseString(input string) (*Profile, error) {
	return profileParser.ParseString("", input)
}
