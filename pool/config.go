package pool

import (
	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/andrewbytecoder/ngxkit/math"
)

const (
	// DefaultBlockSize 对应 NGX_DEFAULT_POOL_SIZE
	DefaultBlockSize = 16 * 1024
	// DefaultAlignment 对应 NGX_POOL_ALIGNMENT
	DefaultAlignment = 16
)

// Config 是 Pool 的配置
type Config struct {
	// Name 用于日志和监控指标中区分不同的 pool
	Name string
	// BlockSize 每个内存块的大小（字节）
	BlockSize int
	// LargeThreshold 超过该大小的申请单独分配，不占用内存块，对应 NGX_MAX_ALLOC_FROM_POOL
	LargeThreshold int
	// Alignment 分配地址的对齐边界，必须是2的幂次方
	Alignment int
	// MaxSize pool 可以持有的最大字节数，0 表示不限制
	MaxSize int
	// Verbose 为 true 时记录每次内存块分配
	Verbose bool
	// Logger 为 nil 时不输出日志，可以用 logger.New 创建
	Logger *zap.Logger
}

// DefaultConfig 返回 nginx 默认参数下的配置
func DefaultConfig(name string) Config {
	threshold := pageSize() - 1
	if threshold > DefaultBlockSize {
		threshold = DefaultBlockSize
	}
	return Config{
		Name:           name,
		BlockSize:      DefaultBlockSize,
		LargeThreshold: threshold,
		Alignment:      DefaultAlignment,
	}
}

func (c Config) validate() error {
	if c.BlockSize <= 0 {
		return errors.New("BlockSize must be > 0")
	}
	if !math.IsPowerOfTwo(c.Alignment) {
		return errors.New("Alignment must be power of two")
	}
	if c.LargeThreshold < 0 || c.LargeThreshold > c.BlockSize {
		return errors.New("LargeThreshold must be within [0, BlockSize]")
	}
	if c.MaxSize < 0 {
		return errors.New("MaxSize must be >= 0")
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger.With(zap.String("pool", c.Name))
}

// ParseSize 解析 "16KiB"、"4m" 这类可读的大小配置
func ParseSize(s string) (int, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "pool: parse size %q", s)
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "pool: parse size %q", s)
	}
	return int(n), nil
}

func humanSize(n int) string {
	return units.BytesSize(float64(n))
}
