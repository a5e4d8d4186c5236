package pool

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/andrewbytecoder/ngxkit/math"
)

// MMapPool 是建立在文件映射区域上的固定大小 Pool，用来模拟位于共享内存中的宿主 pool
// （例如 nginx 的共享内存 zone）。区域大小按页对齐，用完后 Alloc 返回 ErrPoolFull。
//
// Strings allocated from an MMapPool must not be used after Close: the
// region is unmapped and touching it faults.
type MMapPool struct {
	*Pool
	f      io.Closer
	m      mmap.MMap
	closed bool
}

// NewMMapPool 创建并映射 filename，大小向上对齐到页大小
// 参数:
//
//	filename: 映射文件路径，已存在时会被截断
//	size: 期望的区域大小（字节）
//	config: pool 配置，BlockSize 与 LargeThreshold 不生效
//
// 返回值:
//
//	*MMapPool: MMapPool 实例指针
//	error: 打开、截断或映射失败时返回错误
func NewMMapPool(filename string, size int, config Config) (*MMapPool, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "mmapPool: size %d", size)
	}
	if config.Alignment == 0 {
		config.Alignment = DefaultAlignment
	}
	if !math.IsPowerOfTwo(config.Alignment) {
		return nil, errors.New("mmapPool: Alignment must be power of two")
	}
	logger := config.logger()
	size = math.AlignUp(size, pageSize())

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o600)
	if err != nil {
		absPath, pathErr := filepath.Abs(filename)
		if pathErr != nil {
			absPath = filename
		}
		logger.Error("mmapPool: open", zap.String("path", absPath), zap.Error(err))
		return nil, errors.Wrap(err, "mmapPool: open")
	}

	if err = file.Truncate(int64(size)); err != nil {
		file.Close()
		logger.Error("mmapPool: truncate", zap.String("filename", filename), zap.Error(err))
		return nil, errors.Wrap(err, "mmapPool: truncate")
	}

	region, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		file.Close()
		logger.Error("mmapPool: mmap", zap.String("filename", filename),
			zap.String("attempted size", humanSize(size)), zap.Error(err))
		return nil, errors.Wrap(err, "mmapPool: mmap")
	}

	config.BlockSize = size
	config.LargeThreshold = size
	if config.Verbose {
		logger.Debug("mmapPool: mapped", zap.String("filename", filename), zap.String("size", humanSize(size)))
	}
	return &MMapPool{
		Pool: newFixed(region, config),
		f:    file,
		m:    region,
	}, nil
}

// Flush 将映射区域的内容同步到文件
func (m *MMapPool) Flush() error {
	if m.closed {
		return ErrPoolDestroyed
	}
	return errors.Wrap(m.m.Flush(), "mmapPool: flush")
}

// Close 销毁 pool 并解除映射，之后该区域上的字符串都不可再访问
func (m *MMapPool) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.Pool.Destroy()

	err := m.m.Unmap()
	if err != nil {
		err = fmt.Errorf("mmapPool: unmapping: %w", err)
	}

	if fErr := m.f.Close(); fErr != nil {
		return stderrors.Join(fmt.Errorf("mmapPool: close file: %w", fErr), err)
	}

	return err
}
