// Package logs 基于 zerolog 构建结构化日志。
//
// 生产环境使用 JSON 输出，开发环境使用 console 输出：
//
//	logger := logs.New(logs.Config{Level: "debug", Format: "console"})
//	logger.Info().Str("user_id", uid).Int("results", n).Msg("recommend done")
//
// 不修改 zerolog 的全局状态，每个 Logger 独立配置。
package logs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config 是日志配置。
type Config struct {
	// Level：trace / debug / info / warn / error / disabled，默认 info
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error disabled"`

	// Format：json / console，默认 json
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`

	// Caller 输出调用位置
	Caller bool `yaml:"caller"`

	// Output 默认 os.Stderr
	Output io.Writer `yaml:"-" ignored:"true"`
}

// New 按配置创建 Logger。
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// ParseLevel 解析日志级别，无法识别时返回 info。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
