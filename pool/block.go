package pool

import (
	"github.com/andrewbytecoder/ngxkit/math"
)

// 连续分配失败超过该次数的内存块不再参与查找，对应 ngx_palloc_block 中的 failed++ > 4
const maxBlockFailures = 4

// block 是一段连续的字节数组，从 tail 开始向后切分，只增不减
// 与 ring buffer 不同，block 中的数据不会被单独释放，只能整体 reset
type block struct {
	array  []byte // underlying byte array
	tail   int    // index of first free byte
	failed int    // number of requests this block could not serve
}

func newBlock(size int) *block {
	return &block{array: make([]byte, size)}
}

// alloc 切出 size 字节，起始位置按 align 对齐
// 返回的切片 cap 等于 size，append 不会越界写到相邻的分配上
func (b *block) alloc(size int, align int) ([]byte, bool) {
	start := b.tail
	if align > 1 {
		start = math.AlignUp(start, align)
	}
	if start+size > len(b.array) {
		b.failed++
		return nil, false
	}
	b.tail = start + size
	return b.array[start:b.tail:b.tail], true
}

func (b *block) reset() {
	b.tail = 0
	b.failed = 0
}
