package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogModeConcise 精簡模式：主控台只輸出警告以上
const LogModeConcise = "concise"

// ServiceName 所有日誌帶上的服務名稱
const ServiceName = "recipebot"

var (
	// 定義日誌級別的顏色
	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m", // 青色
		zapcore.InfoLevel:  "\033[32m", // 綠色
		zapcore.WarnLevel:  "\033[33m", // 黃色
		zapcore.ErrorLevel: "\033[31m", // 紅色
		zapcore.FatalLevel: "\033[35m", // 紫色
	}
	resetColor = "\033[0m"

	// 不寫入日誌的敏感欄位
	sensitiveKeys = map[string]bool{
		"api_key":       true,
		"authorization": true,
		"token":         true,
	}
)

// LogOptions 日誌設定
type LogOptions struct {
	Level string
	Mode  string
	Dir   string // 空字串表示不寫檔
}

// 自定義編碼器配置
func getEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "", // 移除 logger 名稱
		CallerKey:      "", // 移除調用者信息
		MessageKey:     "msg",
		StacktraceKey:  "", // 移除堆棧跟踪
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// 檔案使用標準 ISO8601 時間與小寫級別
func getFileEncoderConfig() zapcore.EncoderConfig {
	cfg := getEncoderConfig()
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// 自定義時間格式
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// 自定義級別編碼器（添加顏色）
func customLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelColors[l] + shortLevel(l) + resetColor)
}

// shortLevel 統一級別顯示長度
func shortLevel(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return "DBG"
	case zapcore.InfoLevel:
		return "INF"
	case zapcore.WarnLevel:
		return "WRN"
	case zapcore.ErrorLevel:
		return "ERR"
	case zapcore.FatalLevel:
		return "FAT"
	default:
		return strings.ToUpper(l.String())
	}
}

// ParseLevel 解析日誌級別，無法辨識時回傳 info
func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// LogFileName 當日日誌檔名
func LogFileName(now time.Time) string {
	return fmt.Sprintf("recipebot_%s.log", now.Format("20060102"))
}

// NewLogger 初始化日誌系統。
// 回傳的 cleanup 會 flush 緩衝並關閉日誌檔，呼叫後不得再使用 logger。
func NewLogger(opts LogOptions) (*zap.Logger, func(), error) {
	level := ParseLevel(opts.Level)

	consoleLevel := level
	if opts.Mode == LogModeConcise && consoleLevel < zapcore.WarnLevel {
		consoleLevel = zapcore.WarnLevel
	}

	var closers []io.Closer
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(getEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			consoleLevel,
		),
	}

	if opts.Dir != "" {
		// 創建日誌目錄
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		logFile, err := os.OpenFile(filepath.Join(opts.Dir, LogFileName(time.Now())), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}

		closers = append(closers, logFile)
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(getFileEncoderConfig()),
			zapcore.AddSync(logFile),
			level,
		))
	}

	logger := NewLoggerWithCores(cores...)
	cleanup := func() {
		_ = logger.Sync()
		for _, c := range closers {
			_ = c.Close()
		}
	}
	return logger, cleanup, nil
}

// NewLoggerWithCores 以指定的 cores 建立 logger，套用敏感欄位過濾與服務名稱。
// 每個 core 個別包裝，各自的級別設定才會生效。
func NewLoggerWithCores(cores ...zapcore.Core) *zap.Logger {
	wrapped := make([]zapcore.Core, len(cores))
	for i, core := range cores {
		wrapped[i] = NewFilterCore(core)
	}
	return zap.New(zapcore.NewTee(wrapped...),
		zap.Fields(zap.String("service", ServiceName)),
	)
}

// filterCore 過濾敏感欄位的 core
type filterCore struct {
	zapcore.Core
}

// NewFilterCore 包裝 core，丟棄敏感欄位
func NewFilterCore(core zapcore.Core) zapcore.Core {
	return &filterCore{Core: core}
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(filterFields(fields))}
}

func (c *filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *filterCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, filterFields(fields))
}

func filterFields(fields []zapcore.Field) []zapcore.Field {
	filtered := make([]zapcore.Field, 0, len(fields))
	for _, field := range fields {
		if sensitiveKeys[strings.ToLower(field.Key)] {
			continue
		}
		filtered = append(filtered, field)
	}
	return filtered
}
