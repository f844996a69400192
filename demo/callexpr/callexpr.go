// Package callexpr parses call expressions such as `fib(30)` or
// `binom(n=20, k=10)` into a function name and memo.Args.
package callexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/on-the-ground/memo_ive_go/memo"
)

// ErrSyntax wraps every parse failure.
var ErrSyntax = errors.New("callexpr: syntax error")

// ErrDuplicateName is returned when a named argument is passed twice.
var ErrDuplicateName = errors.New("callexpr: duplicate named argument")

var callLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Punct", Pattern: `[(),=]`},
	{Name: "whitespace", Pattern: `\s+`},
})

type callGrammar struct {
	Func string      `@Ident "("`
	Args []*argument `( @@ ( "," @@ )* )? ")"`
}

type argument struct {
	Name  string `( @Ident "=" )?`
	Value *value `@@`
}

type value struct {
	String *string `  @String`
	Int    *int    `| @Int`
}

func (v *value) get() any {
	if v.String != nil {
		return *v.String
	}
	return *v.Int
}

// Call is a parsed call expression.
type Call struct {
	Func string
	Args memo.Args
}

func (c Call) String() string {
	parts := make([]string, 0, len(c.Args.Positional)+len(c.Args.Named))
	for _, v := range c.Args.Positional {
		parts = append(parts, literal(v))
	}
	for _, name := range sortedNames(c.Args.Named) {
		parts = append(parts, name+"="+literal(c.Args.Named[name]))
	}
	return c.Func + "(" + strings.Join(parts, ", ") + ")"
}

// Parser turns expressions into Calls. It is safe for concurrent use.
type Parser struct {
	parser *participle.Parser[callGrammar]
}

func New() (*Parser, error) {
	parser, err := participle.Build[callGrammar](
		participle.Lexer(callLexer),
		participle.Unquote("String"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a single call expression. Positional arguments must come
// before named ones.
func (p *Parser) Parse(input string) (Call, error) {
	g, err := p.parser.ParseString("", input)
	if err != nil {
		return Call{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	call := Call{Func: g.Func}
	for _, a := range g.Args {
		if a.Name == "" {
			if len(call.Args.Named) > 0 {
				return Call{}, fmt.Errorf("%w: positional argument after named argument in %q", ErrSyntax, input)
			}
			call.Args.Positional = append(call.Args.Positional, a.Value.get())
			continue
		}
		if _, dup := call.Args.Lookup(a.Name); dup {
			return Call{}, fmt.Errorf("%w: %s", ErrDuplicateName, a.Name)
		}
		call.Args = call.Args.With(a.Name, a.Value.get())
	}
	return call, nil
}
