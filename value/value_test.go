package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFalsyRule(t *testing.T) {
	require.True(t, Nil.Falsy())
	require.True(t, Bool(false).Falsy())
	require.False(t, Bool(true).Falsy())
	require.False(t, Number(0).Falsy())
	require.False(t, String("").Falsy())
}

func TestEqualCrossTagIsFalse(t *testing.T) {
	require.False(t, Equal(Number(0), Bool(false)))
	require.False(t, Equal(Nil, Bool(false)))
	require.False(t, Equal(String("0"), Number(0)))
}

func TestEqualStructural(t *testing.T) {
	require.True(t, Equal(Number(1), Number(1)))
	require.True(t, Equal(String("foo"), String("foo")))
	require.False(t, Equal(String("foo"), String("bar")))
	require.True(t, Equal(Nil, Nil))
}

func TestNaNIsNeverEqualToItself(t *testing.T) {
	nan := Number(math.NaN())
	require.False(t, Equal(nan, nan))
}

func TestStringCanonicalForm(t *testing.T) {
	require.Equal(t, "7", Number(7).String())
	require.Equal(t, "7.5", Number(7.5).String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "nil", Nil.String())
	require.Equal(t, "foobar", String("foobar").String())
}

func TestConstantPoolAddAndGet(t *testing.T) {
	var pool ConstantPool
	idx, err := pool.Add(Number(42))
	require.NoError(t, err)
	require.Equal(t, byte(0), idx)
	require.Equal(t, Number(42), pool.Get(idx))
}

func TestConstantPoolOverflow(t *testing.T) {
	var pool ConstantPool
	for i := 0; i < MaxConstants; i++ {
		_, err := pool.Add(Number(float64(i)))
		require.NoError(t, err)
	}
	idx, err := pool.Add(Number(999))
	require.Error(t, err)
	require.Equal(t, byte(0), idx)
	require.Equal(t, MaxConstants, pool.Len())
}

func TestConstantPoolInternDeduplicates(t *testing.T) {
	var pool ConstantPool
	a, err := pool.Intern("hello")
	require.NoError(t, err)
	b, err := pool.Intern("hello")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, 1, pool.Len())
}
