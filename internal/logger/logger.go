package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New 建立結構化 logger
//
// 參數:
//
//	level: "debug" / "info" / "warn" / "error"，無法解析時使用 info
//	pretty: true 時輸出人類易讀格式 (開發用)，否則輸出 JSON
func New(level string, pretty bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return NewWithWriter(out).Level(ParseLevel(level))
}

// NewWithWriter 以指定 writer 建立 logger
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel 解析 log 等級
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithContext 把 logger 放進 context
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return log.WithContext(ctx)
}

// FromContext 從 context 取出 logger，沒有時回傳停用的 logger
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}
