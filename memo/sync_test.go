package memo_test

import (
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_ConcurrentCallersShareOneComputation(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	m := memo.WrapSync(func(args memo.Args) (int, error) {
		calls.Add(1)
		<-release
		return args.Arg(0).(int) * 10, nil
	})

	const numCallers = 32
	results := make([]int, numCallers)
	var wg sync.WaitGroup
	for i := range numCallers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := m.CallPos(7)
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 70, v)
	}
	assert.Equal(t, 1, m.Len())
}

func TestSync_ErrorReachesWaitersAndIsNotCached(t *testing.T) {
	errUnavailable := errors.New("unavailable")
	var calls atomic.Int32
	var failing atomic.Bool
	failing.Store(true)
	release := make(chan struct{})

	m := memo.WrapSync(func(args memo.Args) (string, error) {
		calls.Add(1)
		<-release
		if failing.Load() {
			return "", errUnavailable
		}
		return "up", nil
	})

	const numCallers = 8
	var wg sync.WaitGroup
	for range numCallers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.CallPos("svc")
			assert.ErrorIs(t, err, errUnavailable)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.LessOrEqual(t, calls.Load(), int32(numCallers))
	assert.Equal(t, 0, m.Len())

	failing.Store(false)
	before := calls.Load()
	v, err := m.CallPos("svc")
	require.NoError(t, err)
	assert.Equal(t, "up", v)
	assert.Equal(t, before+1, calls.Load())
	assert.Equal(t, 1, m.Len())
}

func TestSync_DistinctKeysDoNotBlock(t *testing.T) {
	release := make(chan struct{})
	m := memo.WrapSync(func(args memo.Args) (string, error) {
		if args.Arg(0) == "slow" {
			<-release
		}
		return args.Arg(0).(string), nil
	})

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		v, err := m.CallPos("slow")
		assert.NoError(t, err)
		assert.Equal(t, "slow", v)
	}()

	fastDone := make(chan struct{})
	go func() {
		defer close(fastDone)
		v, err := m.CallPos("fast")
		assert.NoError(t, err)
		assert.Equal(t, "fast", v)
	}()

	select {
	case <-fastDone:
	case <-time.After(time.Second):
		t.Fatal("call for a distinct key waited on an in-flight computation")
	}

	close(release)
	<-slowDone
	assert.Equal(t, 2, m.Len())
}

func TestSync_KeySemanticsMatchMemoized(t *testing.T) {
	var calls atomic.Int32
	m := memo.WrapSync(func(args memo.Args) (*int, error) {
		calls.Add(1)
		return nil, nil
	})

	v, err := m.Call(memo.Args{}.With("x", 1).With("y", 2))
	require.NoError(t, err)
	assert.Nil(t, v)
	_, _ = m.Call(memo.Args{Named: map[string]any{"y": 2, "x": 1}})
	assert.Equal(t, int32(1), calls.Load())

	_, _ = m.CallPos(1, 2)
	_, _ = m.CallPos(2, 1)
	assert.Equal(t, int32(3), calls.Load())

	_, err = m.CallPos([]byte("raw"))
	assert.ErrorIs(t, err, memo.ErrKeyConstruction)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSync_RecursiveFib(t *testing.T) {
	var calls atomic.Int32
	var fib *memo.SyncMemoized[int]
	fib = memo.WrapSync(func(args memo.Args) (int, error) {
		calls.Add(1)
		n := args.Arg(0).(int)
		if n <= 0 {
			return 1, nil
		}
		a, err := fib.CallPos(n - 1)
		if err != nil {
			return 0, err
		}
		b, err := fib.CallPos(n - 2)
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}, memo.WithName("fib"))

	v, err := fib.CallPos(30)
	require.NoError(t, err)
	assert.Equal(t, 2178309, v)
	assert.Equal(t, int32(32), calls.Load())
	assert.Equal(t, "fib", fib.Name())
	assert.Equal(t, "memo.sync(fib)", fib.String())
}

func TestSync_ManyKeysManyGoroutines(t *testing.T) {
	var calls atomic.Int32
	m := memo.WrapSync(func(args memo.Args) (int, error) {
		calls.Add(1)
		return args.Arg(0).(int) + args.Arg(1).(int), nil
	})

	const keys = 64
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range keys {
				v, err := m.CallPos(i, g%2)
				assert.NoError(t, err)
				assert.Equal(t, i+g%2, v)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2*keys), calls.Load())
	assert.Equal(t, 2*keys, m.Len())
}

type settings struct {
	N     int
	Extra any
}

type tag struct{ name string }

func (t *tag) String() string { return t.name }

func TestSync_KeyIdentityMatchesMemoizedAcrossShards(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(64))

	var syncCalls, plainCalls atomic.Int32
	sm := memo.WrapSync(func(memo.Args) (int, error) {
		syncCalls.Add(1)
		return 0, nil
	})
	pm := memo.Wrap(func(memo.Args) (int, error) {
		plainCalls.Add(1)
		return 0, nil
	})
	both := func(vals ...any) {
		t.Helper()
		_, err := sm.CallPos(vals...)
		require.NoError(t, err)
		_, err = pm.CallPos(vals...)
		require.NoError(t, err)
	}

	cfg := &settings{}
	for i := range 20 {
		cfg.N = i
		cfg.Extra = float64(i)
		both(cfg)
	}
	assert.Equal(t, int32(1), syncCalls.Load())
	assert.Equal(t, 1, sm.Len())

	negZero := math.Copysign(0, -1)
	both([1]float64{0})
	both([1]float64{negZero})
	both(settings{Extra: 0.0}, "x")
	both(settings{Extra: negZero}, "x")
	assert.Equal(t, int32(3), syncCalls.Load())
	assert.Equal(t, 3, sm.Len())

	tg := &tag{name: "before"}
	both(tg)
	tg.name = "after"
	both(tg)
	assert.Equal(t, int32(4), syncCalls.Load())

	assert.Equal(t, plainCalls.Load(), syncCalls.Load())
	assert.Equal(t, pm.Len(), sm.Len())
}
