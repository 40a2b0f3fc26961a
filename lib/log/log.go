package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const envLevel = "ARTWHALE_LOG_LEVEL"

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sink  = &fileSink{}
	root  *zap.Logger
)

func init() {
	if lv, ok := os.LookupEnv(envLevel); ok {
		_ = SetLevel(lv)
	}

	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder
	pe.MessageKey = "message"
	pe.TimeKey = "time"
	fileEncoder := zapcore.NewJSONEncoder(pe)

	pe.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(pe)

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(fileEncoder, sink, level),
	)

	root = zap.New(core, zap.AddCaller())
}

// Logger returns a named logger; all loggers share level and outputs.
func Logger(name string) *zap.SugaredLogger {
	return root.Named(name).Sugar()
}

// SetLevel changes the level of every logger.
func SetLevel(lv string) error {
	return level.UnmarshalText([]byte(strings.ToLower(lv)))
}

// SetOutput starts writing json records into a rotated file at path.
// An empty path stops file output.
func SetOutput(path string, maxSize, maxBackups, maxAge int) {
	if path == "" {
		sink.set(nil)
		return
	}
	sink.set(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	})
}

func Sync() error {
	return root.Sync()
}

type fileSink struct {
	sync.Mutex
	w io.WriteCloser
}

func (s *fileSink) set(w io.WriteCloser) {
	s.Lock()
	defer s.Unlock()
	if s.w != nil {
		_ = s.w.Close()
	}
	s.w = w
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.Lock()
	defer s.Unlock()
	if s.w == nil {
		return len(p), nil
	}
	return s.w.Write(p)
}

func (s *fileSink) Sync() error {
	return nil
}
