package ngxstr

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

// Equal 报告 a 与 b 是否相等：Len 相同且 Data[:Len] 逐字节相同
// 两个长度为 0 的字符串总是相等，与 Data 是否为 nil 无关；Data 不足 Len 的字符串与任何非空字符串都不相等
func Equal(a, b Str) bool {
	if a.Len != b.Len {
		return false
	}
	if a.Len == 0 {
		return true
	}
	ab, err := a.Bytes()
	if err != nil {
		return false
	}
	bb, err := b.Bytes()
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}

// CompatEqual 复刻宿主库的比较方式：Len 相同后用 strcmp 比较内容
// strcmp 在第一个 0 字节处停止，而不是在 Len 处停止：
//   - Len 之内出现 0 字节时，之后的内容不参与比较
//   - Len 之内没有 0 字节时会继续比较 Len 之后的字节，直到 0 字节或 cap(Data)
//   - Data 不足 Len 时不会报错，只比较 Data 容量内的字节，例如两个 Str{Len: 3} 相等，而 Equal 认为不相等
//
// 因此 CompatEqual 不保证与 Equal 一致，也不保证传递性，只在需要与宿主行为逐位兼容时使用
func CompatEqual(a, b Str) bool {
	if a.Len != b.Len {
		return false
	}
	if a.Len == 0 {
		return true
	}
	return strcmp(a.terminated(), b.terminated()) == 0
}

// terminated returns Data extended to its capacity, the region strcmp may scan
func (s Str) terminated() []byte {
	return s.Data[:cap(s.Data)]
}

// Mode 选择字符串比较方式
type Mode int

const (
	// Bounded compares exactly Len bytes.
	Bounded Mode = iota
	// TerminatorScan compares up to the first NUL byte like the host library.
	TerminatorScan
)

func (m Mode) String() string {
	switch m {
	case Bounded:
		return "bounded"
	case TerminatorScan:
		return "terminator-scan"
	default:
		return "unknown"
	}
}

// ParseMode 解析配置中的比较方式名称
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bounded":
		return Bounded, nil
	case "terminator-scan", "strcmp", "compat":
		return TerminatorScan, nil
	default:
		return Bounded, errors.Errorf("ngxstr: unknown compare mode %q", s)
	}
}

// Comparator 按配置的 Mode 比较字符串，零值使用 Bounded
type Comparator struct {
	Mode Mode
}

// Equal compares a and b using c.Mode.
func (c Comparator) Equal(a, b Str) bool {
	if c.Mode == TerminatorScan {
		return CompatEqual(a, b)
	}
	return Equal(a, b)
}
