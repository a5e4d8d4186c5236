package ngxstr

import (
	"bytes"
	"testing"
	"unsafe"
)

func makeText(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = 'a' + byte(i%26)
	}
	return data
}

// BenchmarkView 零拷贝视图（含 UTF-8 校验）
func BenchmarkView(b *testing.B) {
	data := makeText(1024)
	s := Str{Len: len(data), Data: data}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.View()
	}
}

// BenchmarkMaterialize 复制为独立字符串
func BenchmarkMaterialize(b *testing.B) {
	data := makeText(1024)
	s := Str{Len: len(data), Data: data}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Materialize()
	}
}

// BenchmarkEqual 按长度比较
func BenchmarkEqual(b *testing.B) {
	x := Str{Len: 1024, Data: makeText(1024)}
	y := Str{Len: 1024, Data: makeText(1024)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Equal(x, y)
	}
}

// BenchmarkCompatEqual 按终止符扫描比较
func BenchmarkCompatEqual(b *testing.B) {
	x := Str{Len: 1024, Data: makeText(1024)}
	y := Str{Len: 1024, Data: makeText(1024)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CompatEqual(x, y)
	}
}

func TestBytesToStringNoCopy(t *testing.T) {
	data := []byte("test data")
	result := bytesToString(data)

	if result != string(data) {
		t.Errorf("bytesToString = %q, want %q", result, data)
	}
	if unsafe.StringData(result) != unsafe.SliceData(data) {
		t.Error("bytesToString should not copy data but appears to have copied")
	}
}

func TestBytesToStringEmpty(t *testing.T) {
	if s := bytesToString(nil); s != "" {
		t.Errorf("bytesToString(nil) = %q", s)
	}
	if s := bytesToString([]byte{}); s != "" {
		t.Errorf("bytesToString(empty) = %q", s)
	}
}

func TestInvalidOffset(t *testing.T) {
	cases := []struct {
		data []byte
		want int
	}{
		{[]byte("plain ascii"), -1},
		{[]byte("中文"), -1},
		{[]byte{0xff}, 0},
		{[]byte{'o', 'k', 0xc3}, 2},
		{append([]byte("中"), 0xe4, 0xb8), 3},
	}
	for _, c := range cases {
		if got := invalidOffset(c.data); got != c.want {
			t.Errorf("invalidOffset(%q) = %d, want %d", c.data, got, c.want)
		}
	}
}

func TestStrcmpMatchesBytesCompareWithoutNul(t *testing.T) {
	pairs := [][2]string{{"a", "b"}, {"abc", "abc"}, {"abc", "ab"}, {"", "x"}}
	for _, p := range pairs {
		want := bytes.Compare([]byte(p[0]), []byte(p[1]))
		got := strcmp([]byte(p[0]), []byte(p[1]))
		if (got < 0) != (want < 0) || (got == 0) != (want == 0) {
			t.Errorf("strcmp(%q, %q) = %d, bytes.Compare = %d", p[0], p[1], got, want)
		}
	}
}
