package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger captures every entry in a buffer (shown in the preview log panel)
// and optionally mirrors it to a console writer.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
}

type options struct {
	console io.Writer
	level   zapcore.Level
}

type Option func(*options)

// WithConsole tees every entry to w in addition to the capture buffer.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

func WithLevel(level zapcore.Level) Option {
	return func(o *options) { o.level = level }
}

func New(opts ...Option) *ZapLogger {
	o := options{level: zap.DebugLevel}
	for _, opt := range opts {
		opt(&o)
	}

	logBuf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(config)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(logBuf), o.level),
	}
	if o.console != nil {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(o.console), o.level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &ZapLogger{
		log:    logger,
		logBuf: logBuf,
	}
}

// NewNop discards everything. Used by library callers that do not care about logs.
func NewNop() *ZapLogger {
	return &ZapLogger{
		log:    zap.NewNop(),
		logBuf: &bytes.Buffer{},
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m" // Cyan
	case zapcore.InfoLevel:
		colorCode = "\033[32m" // Green
	case zapcore.WarnLevel:
		colorCode = "\033[33m" // Yellow
	case zapcore.ErrorLevel:
		colorCode = "\033[31m" // Red
	default:
		colorCode = "\033[0m" // Default
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiPattern = regexp.MustCompile(`\033\[(\d+)m`)

// ansiToHTML converts ANSI colour codes to inline-styled spans inside a <pre> block.
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiPattern.FindAllStringIndex(input, -1) {
		start := match[0]
		end := match[1]

		if start > lastIndex {
			result.WriteString(escapeHTML(input[lastIndex:start]))
		}

		colorCode := input[start+2 : end-1]
		color, ok := colorMap[colorCode]
		if ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if colorCode == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(escapeHTML(input[lastIndex:]))
	}

	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")

	return result.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// HTML renders everything captured so far for the preview page.
func (z *ZapLogger) HTML() string {
	return ansiToHTML(z.logBuf.String())
}

// Text returns the captured log with colour codes stripped.
func (z *ZapLogger) Text() string {
	return ansiPattern.ReplaceAllString(z.logBuf.String(), "")
}

func (z *ZapLogger) ClearLogs() {
	z.logBuf.Reset()
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}

// DebugEnabled reports whether Debug entries are kept. Callers use it to skip
// work that only feeds a Debug line.
func (z *ZapLogger) DebugEnabled() bool {
	return z.log.Core().Enabled(zapcore.DebugLevel)
}

func (z *ZapLogger) Info(wrappedMsg string, fields ...zap.Field) {
	z.log.Info(wrappedMsg, fields...)
}

func (z *ZapLogger) Debug(wrappedMsg string, fields ...zap.Field) {
	z.log.Debug(wrappedMsg, fields...)
}

func (z *ZapLogger) Warn(wrappedMsg string, fields ...zap.Field) {
	z.log.Warn(wrappedMsg, fields...)
}

func (z *ZapLogger) Error(wrappedMsg string, fields ...zap.Field) {
	z.log.Error(wrappedMsg, fields...)
}
