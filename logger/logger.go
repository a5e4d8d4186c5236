// Package logger builds the zap loggers handed to pools and adapters.
package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	// Level 日志级别，例如 "debug"、"info"，为空时为 info
	Level string
	// Development 为 true 时使用 console 编码
	Development bool
	// Filename 不为空时写入文件并按大小滚动，否则写到 stderr
	Filename string
	// MaxSizeMB 单个日志文件的最大大小（MB）
	MaxSizeMB int
	// MaxBackups 保留的旧日志文件个数
	MaxBackups int
	// MaxAgeDays 旧日志文件保留天数
	MaxAgeDays int
	// Compress 是否压缩旧日志文件
	Compress bool
}

// New 根据配置创建 zap.Logger
func New(config Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if config.Level != "" {
		if err := level.UnmarshalText([]byte(config.Level)); err != nil {
			return nil, errors.Wrapf(err, "logger: level %q", config.Level)
		}
	}

	var encoder zapcore.Encoder
	if config.Development {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	var sink zapcore.WriteSyncer
	if config.Filename != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.Filename,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
			Compress:   config.Compress,
		})
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	return zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller()), nil
}
