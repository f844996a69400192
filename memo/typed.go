package memo

import "github.com/on-the-ground/memo_ive_go/shared/helper"

// Memoize1 memoizes a one-argument function. Each call to Memoize1 creates
// an independent table.
//
// A comparable type parameter can still hold a non-comparable value when it
// is an interface type; calling the result with such a value panics with a
// *KeyConstructionError.
func Memoize1[A comparable, R any](fn func(A) R, opts ...Option) func(A) R {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0)), nil
	}, named(fn, opts)...)
	return func(a A) R {
		return must(m.CallPos(a))
	}
}

func Memoize2[A, B comparable, R any](fn func(A, B) R, opts ...Option) func(A, B) R {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1)), nil
	}, named(fn, opts)...)
	return func(a A, b B) R {
		return must(m.CallPos(a, b))
	}
}

func Memoize3[A, B, C comparable, R any](fn func(A, B, C) R, opts ...Option) func(A, B, C) R {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2)), nil
	}, named(fn, opts)...)
	return func(a A, b B, c C) R {
		return must(m.CallPos(a, b, c))
	}
}

func Memoize4[A, B, C, D comparable, R any](fn func(A, B, C, D) R, opts ...Option) func(A, B, C, D) R {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2), arg[D](args, 3)), nil
	}, named(fn, opts)...)
	return func(a A, b B, c C, d D) R {
		return must(m.CallPos(a, b, c, d))
	}
}

// Memoize1E memoizes a one-argument function that can fail. Failures are
// returned unchanged and not stored. Key construction failures are returned
// as errors too.
func Memoize1E[A comparable, R any](fn func(A) (R, error), opts ...Option) func(A) (R, error) {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0))
	}, named(fn, opts)...)
	return func(a A) (R, error) {
		return m.CallPos(a)
	}
}

func Memoize2E[A, B comparable, R any](fn func(A, B) (R, error), opts ...Option) func(A, B) (R, error) {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1))
	}, named(fn, opts)...)
	return func(a A, b B) (R, error) {
		return m.CallPos(a, b)
	}
}

func Memoize3E[A, B, C comparable, R any](fn func(A, B, C) (R, error), opts ...Option) func(A, B, C) (R, error) {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2))
	}, named(fn, opts)...)
	return func(a A, b B, c C) (R, error) {
		return m.CallPos(a, b, c)
	}
}

func Memoize4E[A, B, C, D comparable, R any](fn func(A, B, C, D) (R, error), opts ...Option) func(A, B, C, D) (R, error) {
	m := Wrap(func(args Args) (R, error) {
		return fn(arg[A](args, 0), arg[B](args, 1), arg[C](args, 2), arg[D](args, 3))
	}, named(fn, opts)...)
	return func(a A, b B, c C, d D) (R, error) {
		return m.CallPos(a, b, c, d)
	}
}

// arg converts the i-th positional argument back to its static type. A nil
// interface value comes back as the zero A.
func arg[A any](args Args, i int) A {
	a, _ := helper.GetTypedValueOf2[A](func() (any, bool) {
		return args.Arg(i), true
	})
	return a
}

// named puts the user's function name ahead of opts so an explicit WithName
// still wins.
func named(fn any, opts []Option) []Option {
	return append([]Option{WithName(helper.FuncName(fn))}, opts...)
}

func must[R any](r R, err error) R {
	if err != nil {
		panic(err)
	}
	return r
}
