package math

// Integer 表示所有整数类型（含以其为底层类型的自定义类型）
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IsPowerOfTwo 判断 n 是否为2的幂次方
// n&(n-1) 会清掉最右边的1位，结果为0说明只有一个1位
func IsPowerOfTwo[T Integer](n T) bool {
	return n > 0 && (n&(n-1)) == 0
}

// AlignUp 将 n 向上对齐到 align 的整数倍，align 必须是2的幂次方
// 对应 nginx 的 ngx_align(d, a)
// 参数:
//
//	n: 待对齐的值
//	align: 对齐边界
//
// 返回值:
//
//	T: 对齐后的值
func AlignUp[T Integer](n T, align T) T {
	return (n + align - 1) &^ (align - 1)
}
