package ngxstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// terminatedStr builds a Str over s followed by a NUL byte
func terminatedStr(s string) Str {
	buf := append([]byte(s), 0)
	return Str{Len: len(s), Data: buf[:len(s)]}
}

func TestEqualNull(t *testing.T) {
	for _, eq := range []func(a, b Str) bool{Equal, CompatEqual} {
		assert.True(t, eq(Null(), Null()))
		assert.True(t, eq(Null(), Str{Len: 0, Data: nil}))
		assert.True(t, eq(Null(), Str{Len: 0, Data: []byte("ignored")}))
		assert.True(t, eq(Literal(""), Null()))
		assert.False(t, eq(Null(), Literal("a")))
	}
}

func TestEqualLiteral(t *testing.T) {
	hello := terminatedStr("Hello, world!")
	for _, eq := range []func(a, b Str) bool{Equal, CompatEqual} {
		assert.True(t, eq(Literal("Hello, world!"), hello))
		assert.False(t, eq(Literal("Hello, world"), hello))
		assert.False(t, eq(Literal("Hello, World!"), hello))
	}
}

func TestEqualIndependentCopies(t *testing.T) {
	p := newPool(t)
	a, err := FromString(p, "ngx_http_core_module")
	require.NoError(t, err)
	b, err := FromString(p, "ngx_http_core_module")
	require.NoError(t, err)

	assert.True(t, Equal(a, b))
	assert.True(t, a.Equal(b))
	assert.True(t, Equal(a, Literal("ngx_http_core_module")))
}

func TestEqualDifferentLength(t *testing.T) {
	assert.False(t, Equal(Literal("abc"), Literal("abcd")))
	assert.False(t, CompatEqual(Literal("abc"), Literal("abcd")))
}

func TestEqualShortBuffer(t *testing.T) {
	assert.False(t, Equal(Str{Len: 3}, Str{Len: 3}))
	assert.False(t, Equal(Str{Len: 3, Data: []byte("ab")}, Literal("abc")))
}

// The terminator scan can disagree with the declared length. These cases
// document the boundary rather than a property callers should rely on.
func TestCompatEqualBoundary(t *testing.T) {
	t.Run("embedded nul hides the tail", func(t *testing.T) {
		a := terminatedStr("ab\x00cd")
		b := terminatedStr("ab\x00xy")
		assert.False(t, Equal(a, b))
		assert.True(t, CompatEqual(a, b))
	})

	t.Run("scan continues past the declared length", func(t *testing.T) {
		backing := []byte("abcdef")
		a := Str{Len: 3, Data: backing[:3]}
		assert.True(t, Equal(a, Literal("abc")))
		assert.False(t, CompatEqual(a, Literal("abc")))
	})

	t.Run("end of capacity acts as terminator", func(t *testing.T) {
		p := newPool(t)
		a, err := FromString(p, "abc")
		require.NoError(t, err)
		assert.Equal(t, 3, cap(a.Data))
		assert.True(t, CompatEqual(a, Literal("abc")))
	})

	t.Run("short data is not read", func(t *testing.T) {
		assert.False(t, Equal(Str{Len: 3}, Str{Len: 3}))
		assert.True(t, CompatEqual(Str{Len: 3}, Str{Len: 3}))
	})
}

func TestComparator(t *testing.T) {
	a := terminatedStr("ab\x00cd")
	b := terminatedStr("ab\x00xy")

	assert.False(t, Comparator{}.Equal(a, b))
	assert.False(t, Comparator{Mode: Bounded}.Equal(a, b))
	assert.True(t, Comparator{Mode: TerminatorScan}.Equal(a, b))
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":                Bounded,
		"bounded":         Bounded,
		"Terminator-Scan": TerminatorScan,
		"strcmp":          TerminatorScan,
		" compat ":        TerminatorScan,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("fuzzy")
	assert.Error(t, err)

	assert.Equal(t, "bounded", Bounded.String())
	assert.Equal(t, "terminator-scan", TerminatorScan.String())
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestStrcmp(t *testing.T) {
	assert.Equal(t, 0, strcmp([]byte("abc\x00"), []byte("abc")))
	assert.Equal(t, 0, strcmp(nil, nil))
	assert.Equal(t, 0, strcmp([]byte("ab\x00x"), []byte("ab\x00y")))
	assert.Less(t, strcmp([]byte("abc"), []byte("abd")), 0)
	assert.Greater(t, strcmp([]byte("abcd"), []byte("abc")), 0)
}
