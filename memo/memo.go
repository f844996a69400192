package memo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
)

// Func is a computation over positional and named arguments.
type Func[R any] func(Args) (R, error)

// Memoized wraps a Func with a private result table.
//
// A Memoized is not safe for concurrent use; see WrapSync.
type Memoized[R any] struct {
	fn    Func[R]
	table *table[R]
	ins   *instruments
}

// Wrap returns a memoized version of fn with an empty table of its own.
//
// Panics if fn is nil.
func Wrap[R any](fn Func[R], opts ...Option) *Memoized[R] {
	if fn == nil {
		panic("memo: nil function")
	}
	return &Memoized[R]{
		fn:    fn,
		table: newTable[R](),
		ins:   newInstruments(newConfig(helper.FuncName(fn), opts)),
	}
}

// Call returns the result stored for args, computing and storing it first if
// there is none. An error from the wrapped function is returned as is and
// nothing is stored, so the next call with the same args computes again.
//
// If args cannot form a key, Call returns a *KeyConstructionError without
// calling the wrapped function.
func (m *Memoized[R]) Call(args Args) (R, error) {
	k, err := newKey(args)
	if err != nil {
		m.ins.keyError(err)
		var zero R
		return zero, err
	}

	if r, ok := m.table.load(k); ok {
		m.ins.hit(k)
		return r, nil
	}

	m.ins.miss(k)
	r, err := m.fn(args)
	if err != nil {
		return r, err
	}
	m.table.store(k, r)
	m.ins.stored(k, m.table.len())
	return r, nil
}

// CallPos is Call with positional arguments only.
func (m *Memoized[R]) CallPos(vals ...any) (R, error) {
	return m.Call(Pos(vals...))
}

// Len returns the number of stored results.
func (m *Memoized[R]) Len() int {
	return m.table.len()
}

// Name returns the configured name, or the wrapped function's symbol name.
func (m *Memoized[R]) Name() string {
	return m.ins.name
}

// ID identifies this instance in logs.
func (m *Memoized[R]) ID() uuid.UUID {
	return m.ins.id
}

func (m *Memoized[R]) String() string {
	return fmt.Sprintf("memo(%s)", m.ins.name)
}
