package memo

import "maps"

// Args carries the arguments of one call: an ordered list of positional
// values and a set of named values.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Pos builds Args from positional values.
func Pos(vals ...any) Args {
	return Args{Positional: vals}
}

// With returns a copy of a with the named argument set. The receiver is left
// untouched so partially built Args can be shared.
func (a Args) With(name string, val any) Args {
	named := make(map[string]any, len(a.Named)+1)
	maps.Copy(named, a.Named)
	named[name] = val
	return Args{Positional: a.Positional, Named: named}
}

// Arg returns the i-th positional argument, or nil when there is none.
func (a Args) Arg(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Lookup returns the named argument and whether it was passed.
func (a Args) Lookup(name string) (any, bool) {
	v, ok := a.Named[name]
	return v, ok
}
