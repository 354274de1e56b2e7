package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const (
	maxSize    = 50 // the maximum size in megabytes of the log file
	maxBackups = 30 // the maximum number of old log files to retain
	maxAge     = 28 // the maximum number of days to retain old log files
)

var defaultLogger logr.Logger

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger logr.Logger) {
	defaultLogger = logger
}

// GetLogger returns the default logger
func GetLogger() logr.Logger {
	return defaultLogger
}

// NewLogger builds a logger from flag bound options. When logFile is set, output
// also goes to a size rotated file next to stderr.
func NewLogger(opts *crzap.Options, logFile string) logr.Logger {
	var dest io.Writer = os.Stderr
	if logFile != "" {
		dest = io.MultiWriter(os.Stderr, rotateWriter(logFile))
	}
	return crzap.New(crzap.UseFlagOptions(opts), crzap.WriteTo(dest))
}

func rotateWriter(logFile string) io.Writer {
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
	}
}

func init() {
	zapLog, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("who watches the watchmen (%v)?", err))
	}
	SetDefaultLogger(zapr.NewLogger(zapLog))
}
