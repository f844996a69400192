// Package funcs holds the computations the demo harness memoizes.
package funcs

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
)

var (
	ErrUnknownFunc = errors.New("unknown function")
	ErrBadArgument = errors.New("bad argument")
)

// Self is how a recursive body calls back into its memoized wrapper.
type Self func(memo.Args) (int, error)

// Fib is the body of fib(n): 1 for n <= 0, fib(n-1) + fib(n-2) otherwise.
// The base case is kept as the demo has always defined it, not the usual
// fib(0) = 0. n may be passed by position or as n=.
func Fib(self Self) memo.Func[int] {
	return func(args memo.Args) (int, error) {
		n, err := intArg(args, 0, "n")
		if err != nil {
			return 0, err
		}
		if n <= 0 {
			return 1, nil
		}
		a, err := self(memo.Pos(n - 1))
		if err != nil {
			return 0, err
		}
		b, err := self(memo.Pos(n - 2))
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}
}

// Binomial is the body of binom(n=, k=) by Pascal's rule. Recursive calls
// pass both arguments by name.
func Binomial(self Self) memo.Func[int] {
	return func(args memo.Args) (int, error) {
		n, err := intArg(args, 0, "n")
		if err != nil {
			return 0, err
		}
		k, err := intArg(args, 1, "k")
		if err != nil {
			return 0, err
		}
		switch {
		case n < 0:
			return 0, fmt.Errorf("%w: n must not be negative, got %d", ErrBadArgument, n)
		case k < 0 || k > n:
			return 0, nil
		case k == 0 || k == n:
			return 1, nil
		}
		a, err := self(memo.Args{}.With("n", n-1).With("k", k-1))
		if err != nil {
			return 0, err
		}
		b, err := self(memo.Args{}.With("n", n-1).With("k", k))
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}
}

// ReferenceFib is Fib without memoization.
func ReferenceFib(n int) int {
	if n <= 0 {
		return 1
	}
	return ReferenceFib(n-1) + ReferenceFib(n-2)
}

// ReferenceBinomial is Binomial without memoization.
func ReferenceBinomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	return ReferenceBinomial(n-1, k-1) + ReferenceBinomial(n-1, k)
}

// intArg reads an int passed either at position pos or by name, never both.
func intArg(args memo.Args, pos int, name string) (int, error) {
	return helper.GetTypedValueOf[int](func() (any, error) {
		v, named := args.Lookup(name)
		switch {
		case named && pos < len(args.Positional):
			return nil, fmt.Errorf("%w: multiple values for argument %s", ErrBadArgument, name)
		case named:
			return v, nil
		case pos < len(args.Positional):
			return args.Positional[pos], nil
		}
		return nil, fmt.Errorf("%w: missing argument %s", ErrBadArgument, name)
	})
}
