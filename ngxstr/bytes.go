package ngxstr

import (
	"unicode/utf8"
	"unsafe"
)

// bytesToString 不复制数据，直接以 b 的底层数组构造字符串
// 调用方必须保证 b 在字符串使用期间不被修改，pool 中的内存满足这一点：分配后只读，直到 pool 被回收
func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// invalidOffset 返回第一个非法 UTF-8 字节的位置，全部合法时返回 -1
func invalidOffset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// strcmp 按 C 字符串语义比较，遇到 0 字节即停止，不看声明的长度
// 切片结束处视为终止符，所以不会越界读取
func strcmp(a, b []byte) int {
	for i := 0; ; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if ca != cb {
			return int(ca) - int(cb)
		}
		if ca == 0 {
			return 0
		}
	}
}
