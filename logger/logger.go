package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger builds the application logger. Development gets a colored
// console logger at debug level; everything else logs at info level, as JSON
// unless json is false. Output goes to stderr so response bodies on stdout
// stay clean.
func InitLogger(environment string, json bool) *zap.Logger {
	level := zapcore.InfoLevel
	if environment == "development" {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if json {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)

	opts := []zap.Option{zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if environment == "development" {
		opts = append(opts, zap.AddCaller())
	}

	logger := zap.New(core, opts...)

	// Set as global logger so it can be used throughout the application
	zap.ReplaceGlobals(logger)

	return logger
}
