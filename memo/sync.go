package memo

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
	"golang.org/x/sync/singleflight"
)

// outcome boxes a result so that a nil interface R survives the trip through
// singleflight.
type outcome[R any] struct {
	value R
}

type shard[R any] struct {
	mu    sync.RWMutex
	table *table[R]
	index int
}

// flightKey names the in-flight call for node n. Nodes are never removed,
// so the name is unique per key for the lifetime of the table.
func (s *shard[R]) flightKey(n *node[R]) string {
	return strconv.Itoa(s.index) + ":" + strconv.FormatUint(n.id, 10)
}

// SyncMemoized is a Memoized that is safe for concurrent use.
//
// At most one call of the wrapped function is in flight per key. Callers
// arriving while it runs wait and receive its outcome, error included.
// Errors are still not stored. Shard locks are only held for table access,
// never while the wrapped function runs, so distinct keys do not wait on
// each other.
type SyncMemoized[R any] struct {
	fn     Func[R]
	shards []*shard[R]
	group  singleflight.Group
	ins    *instruments
}

// WrapSync returns a concurrency-safe memoized version of fn.
//
// Panics if fn is nil.
func WrapSync[R any](fn Func[R], opts ...Option) *SyncMemoized[R] {
	if fn == nil {
		panic("memo: nil function")
	}
	numShards := runtime.GOMAXPROCS(0)
	shards := make([]*shard[R], numShards)
	for i := range shards {
		shards[i] = &shard[R]{table: newTable[R](), index: i}
	}
	return &SyncMemoized[R]{
		fn:     fn,
		shards: shards,
		ins:    newInstruments(newConfig(helper.FuncName(fn), opts)),
	}
}

// Call behaves like Memoized.Call, coalescing concurrent calls per key.
func (m *SyncMemoized[R]) Call(args Args) (R, error) {
	k, err := newKey(args)
	if err != nil {
		m.ins.keyError(err)
		var zero R
		return zero, err
	}
	s := m.shards[k.shard(len(m.shards))]

	s.mu.RLock()
	r, ok := s.table.load(k)
	s.mu.RUnlock()
	if ok {
		m.ins.hit(k)
		return r, nil
	}

	s.mu.Lock()
	n := s.table.walk(k)
	if n.present {
		r = n.result
		s.mu.Unlock()
		m.ins.hit(k)
		return r, nil
	}
	s.mu.Unlock()

	v, err, _ := m.group.Do(s.flightKey(n), func() (any, error) {
		// A flight for this key may have finished between the check above
		// and joining the group.
		s.mu.RLock()
		if n.present {
			r := n.result
			s.mu.RUnlock()
			m.ins.hit(k)
			return outcome[R]{value: r}, nil
		}
		s.mu.RUnlock()

		m.ins.miss(k)
		r, err := m.fn(args)
		if err != nil {
			return outcome[R]{value: r}, err
		}

		s.mu.Lock()
		s.table.fill(n, r)
		size := s.table.len()
		s.mu.Unlock()
		m.ins.stored(k, size)
		return outcome[R]{value: r}, nil
	})
	res, _ := v.(outcome[R])
	return res.value, err
}

// CallPos is Call with positional arguments only.
func (m *SyncMemoized[R]) CallPos(vals ...any) (R, error) {
	return m.Call(Pos(vals...))
}

// Len returns the number of stored results across all shards.
func (m *SyncMemoized[R]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.RLock()
		total += s.table.len()
		s.mu.RUnlock()
	}
	return total
}

// Name returns the configured name, or the wrapped function's symbol name.
func (m *SyncMemoized[R]) Name() string {
	return m.ins.name
}

// ID identifies this instance in logs.
func (m *SyncMemoized[R]) ID() uuid.UUID {
	return m.ins.id
}

func (m *SyncMemoized[R]) String() string {
	return fmt.Sprintf("memo.sync(%s)", m.ins.name)
}
