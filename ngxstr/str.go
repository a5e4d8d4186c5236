// Package ngxstr converts between nginx style length prefixed strings
// (ngx_str_t) and Go strings.
//
// A Str never owns its bytes. They belong to the pool that allocated them, or
// to the program for literals, and stay valid until that pool is reset or
// destroyed.
package ngxstr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/andrewbytecoder/ngxkit/pool"
)

// Str 对应 ngx_str_t：声明长度 Len 加上一段不归自己所有的字节 Data
// Len 为 0 时 Data 可以为 nil；Data 的容量可以超过 Len（例如字面量末尾的 0 字节）
type Str struct {
	Len  int
	Data []byte
}

// Literal 对应 ngx_string 宏：Len 为 s 的字节长度，Data 后面带一个终止 0 字节（在容量内）
func Literal(s string) Str {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return Str{Len: len(s), Data: buf[:len(s)]}
}

// Null 对应 ngx_null_string 宏：长度为 0，Data 为 nil
func Null() Str {
	return Str{}
}

// unalignedAllocator 由支持不对齐分配的 pool 实现（ngx_pnalloc），字符串数据不需要对齐
type unalignedAllocator interface {
	AllocUnaligned(size int) ([]byte, error)
}

// FromString 从 a 申请 len(s) 字节并复制 s，返回指向 pool 内存的 Str
// 参数:
//
//	a: 内存分配器，一般是 *pool.Pool
//	s: 源字符串
//
// 返回值:
//
//	Str: 指向 pool 内存的字符串，不带终止 0 字节
//	error: 分配失败时返回错误
func FromString(a pool.Allocator, s string) (Str, error) {
	data, err := alloc(a, len(s))
	if err != nil {
		return Str{}, err
	}
	n := copy(data, s)
	return Str{Len: n, Data: data[:n]}, nil
}

// FromBytes 与 FromString 相同，源数据为字节切片
func FromBytes(a pool.Allocator, b []byte) (Str, error) {
	data, err := alloc(a, len(b))
	if err != nil {
		return Str{}, err
	}
	n := copy(data, b)
	return Str{Len: n, Data: data[:n]}, nil
}

func alloc(a pool.Allocator, size int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if u, ok := a.(unalignedAllocator); ok {
		data, err = u.AllocUnaligned(size)
	} else {
		data, err = a.Alloc(size)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "ngxstr: alloc %d bytes", size)
	}
	if len(data) < size {
		return nil, errors.Wrapf(ErrShortBuffer, "ngxstr: allocator returned %d of %d bytes", len(data), size)
	}
	return data, nil
}

// Bytes returns Data[:Len] without copying.
func (s Str) Bytes() ([]byte, error) {
	if s.Len < 0 || len(s.Data) < s.Len {
		return nil, errors.Wrapf(ErrShortBuffer, "ngxstr: len %d, data %d", s.Len, len(s.Data))
	}
	return s.Data[:s.Len], nil
}

// View 不复制数据，将 Data[:Len] 解释为 UTF-8 字符串
// 返回的字符串与 Data 共享内存，只在 pool 存活期间有效
func (s Str) View() (string, error) {
	b, err := s.Bytes()
	if err != nil {
		return "", err
	}
	if off := invalidOffset(b); off >= 0 {
		return "", &EncodingError{Offset: off, Len: s.Len}
	}
	return bytesToString(b), nil
}

// MustView is like View but panics on invalid data.
func (s Str) MustView() string {
	v, err := s.View()
	if err != nil {
		panic(err)
	}
	return v
}

// Materialize 将 Data[:Len] 复制为独立的 Go 字符串，pool 回收后仍然有效
func (s Str) Materialize() (string, error) {
	v, err := s.View()
	if err != nil {
		return "", err
	}
	return strings.Clone(v), nil
}

// MustMaterialize is like Materialize but panics on invalid data.
func (s Str) MustMaterialize() string {
	v, err := s.Materialize()
	if err != nil {
		panic(err)
	}
	return v
}

// IsNull reports whether s has zero length and no backing data.
func (s Str) IsNull() bool {
	return s.Len == 0 && s.Data == nil
}

// IsEmpty reports whether s has zero length.
func (s Str) IsEmpty() bool {
	return s.Len == 0
}

// Equal 按声明长度比较，见 Equal 函数
func (s Str) Equal(other Str) bool {
	return Equal(s, other)
}

// String 返回文本视图，非法 UTF-8 字节替换为 U+FFFD，Data 不足 Len 时返回空串
func (s Str) String() string {
	b, err := s.Bytes()
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(bytesToString(b), "\uFFFD")
}

// GoString 用于 %#v，额外输出原始的 Len 字段
func (s Str) GoString() string {
	return fmt.Sprintf("ngx_str_t{data: %q, len: %d}", s.String(), s.Len)
}
