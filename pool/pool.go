package pool

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Pool 是一个按块增长的 arena 分配器，行为上对应 nginx 的 ngx_pool_t：
// 小块内存从当前内存块中顺序切分，大块内存单独分配，所有内存在 Reset/Destroy 时整体回收。
//
// Pool is not safe for concurrent use. Like the host pool it belongs to a
// single request or goroutine; Stats may be read concurrently.
type Pool struct {
	config  Config
	blocks  []*block // 内存块
	current int      // 第一个仍参与查找的内存块
	large   [][]byte // 单独分配的大块内存
	size    int      // 当前持有的总字节数
	fixed   bool     // 固定区域，不允许增长（例如 mmap 区域）

	destroyed bool
	stats     counters
	logger    *zap.Logger
}

// New 创建 Pool，第一个内存块在首次分配时才申请
// 参数:
//
//	config: pool 配置
//
// 返回值:
//
//	*Pool: Pool 实例指针
//	error: 配置不合法时返回错误
func New(config Config) (*Pool, error) {
	if err := config.validate(); err != nil {
		return nil, errors.Wrapf(err, "pool %q", config.Name)
	}
	return &Pool{
		config: config,
		logger: config.logger(),
	}, nil
}

// newFixed 在一段已有的内存上创建不可增长的 Pool
func newFixed(region []byte, config Config) *Pool {
	p := &Pool{
		config: config,
		blocks: []*block{{array: region}},
		size:   len(region),
		fixed:  true,
		logger: config.logger(),
	}
	p.stats.blocks.Store(1)
	return p
}

// Name returns the configured pool name.
func (p *Pool) Name() string {
	return p.config.Name
}

// Alloc 分配 size 字节，起始位置按 Config.Alignment 对齐，对应 ngx_palloc
func (p *Pool) Alloc(size int) ([]byte, error) {
	return p.alloc(size, p.config.Alignment)
}

// AllocUnaligned 分配 size 字节且不做对齐，对应 ngx_pnalloc，适合字符串数据
func (p *Pool) AllocUnaligned(size int) ([]byte, error) {
	return p.alloc(size, 1)
}

func (p *Pool) alloc(size int, align int) ([]byte, error) {
	if p.destroyed {
		p.stats.failures.Inc()
		return nil, ErrPoolDestroyed
	}
	if size < 0 {
		p.stats.failures.Inc()
		return nil, errors.Wrapf(ErrInvalidSize, "pool %q: alloc %d", p.config.Name, size)
	}

	if size > p.config.LargeThreshold && !p.fixed {
		return p.allocLarge(size)
	}

	for i := p.current; i < len(p.blocks); i++ {
		b := p.blocks[i]
		if data, ok := b.alloc(size, align); ok {
			p.stats.alloc(size)
			return data, nil
		}
		// 固定区域只有一个块且不会增长，不能跳过
		if !p.fixed && b.failed > maxBlockFailures && i == p.current {
			p.current++
		}
	}

	if p.fixed {
		return nil, p.fail(size, ErrPoolFull)
	}

	b, err := p.grow()
	if err != nil {
		return nil, p.fail(size, err)
	}
	data, _ := b.alloc(size, align)
	p.stats.alloc(size)
	return data, nil
}

func (p *Pool) allocLarge(size int) ([]byte, error) {
	if err := p.reserve(size); err != nil {
		return nil, p.fail(size, err)
	}
	data := make([]byte, size)
	p.large = append(p.large, data)
	p.stats.large.Inc()
	p.stats.alloc(size)
	if p.config.Verbose {
		p.logger.Debug("pool: large allocation", zap.String("size", humanSize(size)))
	}
	return data, nil
}

func (p *Pool) grow() (*block, error) {
	if err := p.reserve(p.config.BlockSize); err != nil {
		return nil, err
	}
	b := newBlock(p.config.BlockSize)
	p.blocks = append(p.blocks, b)
	p.stats.blocks.Inc()
	if p.config.Verbose {
		p.logger.Debug("pool: new block",
			zap.Int("blocks", len(p.blocks)),
			zap.String("total", humanSize(p.size)))
	}
	return b, nil
}

// reserve 记录将要新增的 n 字节，超过 MaxSize 时返回 ErrPoolFull
func (p *Pool) reserve(n int) error {
	if p.config.MaxSize > 0 && p.size+n > p.config.MaxSize {
		return ErrPoolFull
	}
	p.size += n
	return nil
}

func (p *Pool) fail(size int, err error) error {
	p.stats.failures.Inc()
	p.logger.Warn("pool: allocation failed",
		zap.Int("size", size),
		zap.String("held", humanSize(p.size)),
		zap.Error(err))
	return errors.Wrapf(err, "pool %q: alloc %d", p.config.Name, size)
}

// Size 返回 pool 当前持有的总字节数
func (p *Pool) Size() int {
	return p.size
}

// Stats 返回统计信息快照
func (p *Pool) Stats() Stats {
	return p.stats.snapshot()
}

// Reset 回收所有分配，内存块保留复用，大块内存交还给 GC，对应 ngx_reset_pool
// 之前分配出去的内存会被后续分配覆盖，调用方必须保证不再使用
func (p *Pool) Reset() {
	if p.destroyed {
		return
	}
	for _, b := range p.blocks {
		b.reset()
	}
	for _, l := range p.large {
		p.size -= len(l)
	}
	p.large = nil
	p.current = 0
	p.stats.resets.Inc()
}

// Destroy 释放所有内存，之后的 Alloc 返回 ErrPoolDestroyed，对应 ngx_destroy_pool
func (p *Pool) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.blocks = nil
	p.large = nil
	p.size = 0
	p.current = 0
	p.stats.blocks.Store(0)
	if p.config.Verbose {
		p.logger.Debug("pool: destroyed")
	}
}
