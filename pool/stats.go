package pool

import (
	"go.uber.org/atomic"
)

// Stats 是 pool 的统计信息快照
type Stats struct {
	// Allocs 成功分配次数
	Allocs int64 `json:"allocs"`
	// Bytes 成功分配的字节数（不含对齐填充）
	Bytes int64 `json:"bytes"`
	// Failures 分配失败次数
	Failures int64 `json:"failures"`
	// Large 超过 LargeThreshold 的单独分配次数
	Large int64 `json:"large"`
	// Blocks 当前持有的内存块数量
	Blocks int64 `json:"blocks"`
	// Resets Reset 被调用的次数
	Resets int64 `json:"resets"`
}

// counters 可以在 pool 使用期间被监控并发读取，所以用原子变量
type counters struct {
	allocs   atomic.Int64
	bytes    atomic.Int64
	failures atomic.Int64
	large    atomic.Int64
	blocks   atomic.Int64
	resets   atomic.Int64
}

func (c *counters) alloc(size int) {
	c.allocs.Inc()
	c.bytes.Add(int64(size))
}

func (c *counters) snapshot() Stats {
	return Stats{
		Allocs:   c.allocs.Load(),
		Bytes:    c.bytes.Load(),
		Failures: c.failures.Load(),
		Large:    c.large.Load(),
		Blocks:   c.blocks.Load(),
		Resets:   c.resets.Load(),
	}
}
