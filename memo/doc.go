// Package memo memoizes computations by the arguments they are called with.
//
// A memoized function is a drop-in replacement for the function it wraps:
// it accepts the same arguments and returns the same results, but each
// distinct set of arguments is computed at most once. Results are kept in a
// table owned by the wrapper instance; two wrappers around the same function
// never share results.
//
// # Keys
//
// A call is identified by its positional arguments, in order, and its named
// arguments, as a set. Each argument must be comparable at runtime or
// implement fmt.Stringer; anything else fails with a KeyConstructionError
// before the wrapped function runs. The dynamic type takes part in the key,
// so 1 and int64(1) are different calls. Pointers are compared by address,
// not by what they point to.
//
// A non-comparable argument that implements fmt.Stringer is keyed by its
// type and String() output. Two such values of the same type printing the
// same text are the same call: the second gets the result computed for the
// first, even if the values differ.
//
// A NaN argument never matches a previous call, so every call with it runs
// the function again and stores another entry that can never be read. The
// table grows by one entry per such call.
//
//	area := memo.Wrap(func(args memo.Args) (float64, error) {
//	    w, h := args.Named["w"].(float64), args.Named["h"].(float64)
//	    return w * h, nil
//	})
//	area.Call(memo.Args{}.With("w", 2.0).With("h", 3.0)) // computed
//	area.Call(memo.Args{}.With("h", 3.0).With("w", 2.0)) // cached
//
// # Failures
//
// Errors returned by the wrapped function reach the caller untouched and are
// never stored, so the next call with the same arguments tries again. The
// zero value is a legitimate result and is cached like any other.
//
// # Typed helpers
//
// Memoize1 through Memoize4 (and their E variants for functions returning an
// error) memoize ordinary Go functions. Recursive functions refer to the
// memoized version from their own body:
//
//	var fib func(int) int
//	fib = memo.Memoize1(func(n int) int {
//	    if n <= 1 {
//	        return n
//	    }
//	    return fib(n-1) + fib(n-2)
//	})
//
// # Concurrency
//
// Memoized is not safe for concurrent use. WrapSync returns a SyncMemoized
// which runs at most one computation per key at a time; concurrent callers of
// the same key wait for it and share its outcome, while callers of distinct
// keys proceed independently.
//
// WARNING: memoizing an impure function (one depending on time, I/O, etc)
// makes its side effects happen only on the first call for each key.
package memo
