package funcs_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/on-the-ground/memo_ive_go/demo/funcs"
	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceFib_NonstandardBase(t *testing.T) {
	assert.Equal(t, 1, funcs.ReferenceFib(-5))
	assert.Equal(t, 1, funcs.ReferenceFib(0))
	assert.Equal(t, 2, funcs.ReferenceFib(1))
	assert.Equal(t, 3, funcs.ReferenceFib(2))
	assert.Equal(t, 89, funcs.ReferenceFib(10))
}

func TestFib_MatchesReferenceWithLinearWork(t *testing.T) {
	for _, concurrent := range []bool{false, true} {
		in, err := funcs.New("fib", concurrent)
		require.NoError(t, err)

		v, err := in.Call(memo.Pos(30))
		require.NoError(t, err)
		assert.Equal(t, funcs.ReferenceFib(30), v)
		assert.LessOrEqual(t, in.Invocations(), int64(2*30))
		assert.Equal(t, int64(32), in.Invocations())
		assert.Equal(t, 32, in.Entries())

		_, err = in.Call(memo.Pos(30))
		require.NoError(t, err)
		assert.Equal(t, int64(32), in.Invocations())
	}
}

func TestFib_NamedArgument(t *testing.T) {
	in, err := funcs.New("fib", false)
	require.NoError(t, err)

	v, err := in.Call(memo.Args{}.With("n", 10))
	require.NoError(t, err)
	assert.Equal(t, 89, v)
}

func TestBinomial(t *testing.T) {
	in, err := funcs.New("binom", false)
	require.NoError(t, err)

	v, err := in.Call(memo.Args{}.With("n", 20).With("k", 10))
	require.NoError(t, err)
	assert.Equal(t, funcs.ReferenceBinomial(20, 10), v)
	assert.Equal(t, 184756, v)

	calls := in.Invocations()
	v, err = in.Call(memo.Args{Named: map[string]any{"k": 10, "n": 20}})
	require.NoError(t, err)
	assert.Equal(t, 184756, v)
	assert.Equal(t, calls, in.Invocations())

	// Positional form is a different key but the same value.
	v, err = in.Call(memo.Pos(20, 10))
	require.NoError(t, err)
	assert.Equal(t, 184756, v)
	assert.Equal(t, calls+1, in.Invocations())
}

func TestBinomial_Edges(t *testing.T) {
	in, err := funcs.New("binom", false)
	require.NoError(t, err)

	v, _ := in.Call(memo.Pos(5, 7))
	assert.Equal(t, 0, v)
	v, _ = in.Call(memo.Pos(5, 0))
	assert.Equal(t, 1, v)

	_, err = in.Call(memo.Pos(-1, 0))
	assert.ErrorIs(t, err, funcs.ErrBadArgument)
	assert.Equal(t, 2, in.Entries())
}

func TestBadArguments(t *testing.T) {
	in, err := funcs.New("fib", false)
	require.NoError(t, err)

	_, err = in.Call(memo.Pos("thirty"))
	assert.ErrorContains(t, err, "unexpected type: string")

	_, err = in.Call(memo.Args{})
	assert.ErrorIs(t, err, funcs.ErrBadArgument)
	assert.Equal(t, 0, in.Entries())
}

func TestArgumentGivenTwice(t *testing.T) {
	fib, err := funcs.New("fib", false)
	require.NoError(t, err)

	_, err = fib.Call(memo.Pos(3).With("n", 5))
	assert.ErrorIs(t, err, funcs.ErrBadArgument)
	assert.ErrorContains(t, err, "multiple values for argument n")
	assert.Equal(t, int64(1), fib.Invocations())
	assert.Equal(t, 0, fib.Entries())

	binom, err := funcs.New("binom", false)
	require.NoError(t, err)

	_, err = binom.Call(memo.Pos(6, 2).With("k", 3))
	assert.ErrorIs(t, err, funcs.ErrBadArgument)

	// n by position, k by name is fine.
	v, err := binom.Call(memo.Pos(6).With("k", 2))
	require.NoError(t, err)
	assert.Equal(t, 15, v)
}

func TestNew_UnknownFunction(t *testing.T) {
	_, err := funcs.New("ackermann", false)
	assert.True(t, errors.Is(err, funcs.ErrUnknownFunc))
	assert.Equal(t, []string{"binom", "fib"}, funcs.Names())
}

func TestInstance_ConcurrentCallers(t *testing.T) {
	in, err := funcs.New("fib", true)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := in.Call(memo.Pos(25))
			assert.NoError(t, err)
			assert.Equal(t, funcs.ReferenceFib(25), v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(27), in.Invocations())
	assert.Equal(t, "fib", in.Name())
}
