package funcs

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/on-the-ground/memo_ive_go/memo"
)

type body func(Self) memo.Func[int]

var registry = map[string]body{
	"fib":   Fib,
	"binom": Binomial,
}

// Names lists the registered functions.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Instance is a memoized registered function that counts how often its body
// actually runs.
type Instance struct {
	name        string
	call        Self
	entries     func() int
	invocations atomic.Int64
}

// New builds a fresh memoized instance of the named function. With
// concurrent set it is backed by memo.WrapSync.
func New(name string, concurrent bool, opts ...memo.Option) (*Instance, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %v)", ErrUnknownFunc, name, Names())
	}

	in := &Instance{name: name}
	opts = append([]memo.Option{memo.WithName(name)}, opts...)
	// The body recurses through in.Call, which is only set below.
	self := func(args memo.Args) (int, error) { return in.Call(args) }
	fn := b(self)
	counted := func(args memo.Args) (int, error) {
		in.invocations.Add(1)
		return fn(args)
	}

	if concurrent {
		m := memo.WrapSync(counted, opts...)
		in.call, in.entries = m.Call, m.Len
	} else {
		m := memo.Wrap(counted, opts...)
		in.call, in.entries = m.Call, m.Len
	}
	return in, nil
}

func (in *Instance) Call(args memo.Args) (int, error) {
	return in.call(args)
}

func (in *Instance) Name() string {
	return in.name
}

// Invocations counts runs of the underlying body, across all keys.
func (in *Instance) Invocations() int64 {
	return in.invocations.Load()
}

// Entries is the number of memoized results.
func (in *Instance) Entries() int {
	return in.entries()
}
